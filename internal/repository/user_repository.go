package repository

import (
	"context"
	"errors"
	"time"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/persistence"
)

// UserRepository defines persistence access for program accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateStatus(ctx context.Context, email string, status domain.UserStatus) error
	List(ctx context.Context) ([]domain.User, error)
	ListByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error)
}

type userRepository struct {
	store persistence.Store
}

// NewUserRepository returns a CSV-table backed implementation.
func NewUserRepository(store persistence.Store) UserRepository {
	return &userRepository{store: store}
}

func userToRow(user *domain.User) persistence.Row {
	return persistence.Row{
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Address,
		user.Contact,
		string(user.Status),
		string(user.Role),
		user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func userFromRow(row persistence.Row) (domain.User, error) {
	if len(row) < 8 {
		return domain.User{}, errors.New("malformed user row")
	}
	createdAt, err := time.Parse(time.RFC3339, row[7])
	if err != nil {
		createdAt = time.Time{}
	}
	return domain.User{
		Email:        row[0],
		PasswordHash: row[1],
		Name:         row[2],
		Address:      row[3],
		Contact:      row[4],
		Status:       domain.UserStatus(row[5]),
		Role:         domain.Role(row[6]),
		CreatedAt:    createdAt,
	}, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	return r.store.Update(ctx, TableUsers, func(rows []persistence.Row) ([]persistence.Row, error) {
		for _, row := range rows {
			if len(row) > 0 && row[0] == user.Email {
				return nil, ErrDuplicate
			}
		}
		return append(rows, userToRow(user)), nil
	})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	rows, err := r.store.Load(ctx, TableUsers)
	if err != nil {
		if errors.Is(err, persistence.ErrTableMissing) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	for _, row := range rows {
		if len(row) > 0 && row[0] == email {
			user, err := userFromRow(row)
			if err != nil {
				return nil, err
			}
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *userRepository) UpdateStatus(ctx context.Context, email string, status domain.UserStatus) error {
	return r.store.Update(ctx, TableUsers, func(rows []persistence.Row) ([]persistence.Row, error) {
		for i, row := range rows {
			if len(row) > 5 && row[0] == email {
				rows[i][5] = string(status)
				return rows, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.store.Load(ctx, TableUsers)
	if err != nil {
		if errors.Is(err, persistence.ErrTableMissing) {
			return nil, nil
		}
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		user, err := userFromRow(row)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepository) ListByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := users[:0]
	for _, user := range users {
		if user.Status == status {
			filtered = append(filtered, user)
		}
	}
	return filtered, nil
}
