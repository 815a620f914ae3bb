package persistence

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// ErrTableMissing signals the backing file does not exist yet. Repositories
// treat a missing table as empty so first-run bootstrap works without setup.
var ErrTableMissing = errors.New("table missing")

// Row is one record of a table, field order matching the table header.
type Row []string

// Store provides load/append/save access over named tables.
type Store interface {
	Load(ctx context.Context, table string) ([]Row, error)
	Save(ctx context.Context, table string, rows []Row) error
	Append(ctx context.Context, table string, row Row) error
	Update(ctx context.Context, table string, fn func(rows []Row) ([]Row, error)) error
}

// CSVStore persists each table as a CSV file under a data directory,
// header row first. A mutex per table guards read-modify-write sequences.
type CSVStore struct {
	dir     string
	headers map[string][]string
	logger  *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCSVStore creates the store, ensuring the data directory exists.
// headers maps each table name to its column names.
func NewCSVStore(dir string, headers map[string][]string, logger *zap.Logger) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &CSVStore{
		dir:     dir,
		headers: headers,
		logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}, nil
}

func (s *CSVStore) tableLock(table string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[table]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[table] = lock
	}
	return lock
}

func (s *CSVStore) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

func (s *CSVStore) header(table string) ([]string, error) {
	header, ok := s.headers[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return header, nil
}

// Load returns all data rows of a table in file order, header excluded.
func (s *CSVStore) Load(ctx context.Context, table string) ([]Row, error) {
	lock := s.tableLock(table)
	lock.Lock()
	defer lock.Unlock()
	return s.loadLocked(table)
}

func (s *CSVStore) loadLocked(table string) ([]Row, error) {
	if _, err := s.header(table); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path(table))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTableMissing
		}
		return nil, fmt.Errorf("open table %s: %w", table, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", table, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row(record))
	}
	return rows, nil
}

// Save overwrites the table with the given rows. The file is written to a
// temp file first and renamed into place so readers never see a torn write.
func (s *CSVStore) Save(ctx context.Context, table string, rows []Row) error {
	lock := s.tableLock(table)
	lock.Lock()
	defer lock.Unlock()
	return s.saveLocked(table, rows)
}

func (s *CSVStore) saveLocked(table string, rows []Row) error {
	header, err := s.header(table)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, table+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", table, err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write header for %s: %w", table, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("write row for %s: %w", table, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flush table %s: %w", table, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", table, err)
	}

	if err := os.Rename(tmpName, s.path(table)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename table %s: %w", table, err)
	}
	return nil
}

// Append adds one row to the end of a table, creating the file with its
// header on first use.
func (s *CSVStore) Append(ctx context.Context, table string, row Row) error {
	lock := s.tableLock(table)
	lock.Lock()
	defer lock.Unlock()

	rows, err := s.loadLocked(table)
	if err != nil && !errors.Is(err, ErrTableMissing) {
		return err
	}
	return s.saveLocked(table, append(rows, row))
}

// Update applies a read-modify-write under the table lock. An error from fn
// aborts with nothing written. A missing table is presented to fn as empty.
func (s *CSVStore) Update(ctx context.Context, table string, fn func(rows []Row) ([]Row, error)) error {
	lock := s.tableLock(table)
	lock.Lock()
	defer lock.Unlock()

	rows, err := s.loadLocked(table)
	if err != nil && !errors.Is(err, ErrTableMissing) {
		return err
	}

	updated, err := fn(rows)
	if err != nil {
		return err
	}
	return s.saveLocked(table, updated)
}

// Ping verifies the data directory is writable.
func (s *CSVStore) Ping(ctx context.Context) error {
	probe, err := os.CreateTemp(s.dir, "probe-*.tmp")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}
