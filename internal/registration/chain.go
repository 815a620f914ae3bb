package registration

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/repository"
	apperrors "github.com/harmon-corp/reseller-service/pkg/util"
)

// Request carries the fields submitted on the registration form.
type Request struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
	Address         string
	Contact         string
	Role            domain.Role

	// Created is populated by the persist stage on success.
	Created *domain.User
}

// Stage validates or applies one step of a registration request. A non-nil
// error halts the chain.
type Stage func(ctx context.Context, req *Request) error

// Chain runs stages in order, stopping at the first failure. Order is
// significant: cheap format checks run before any store access.
type Chain struct {
	stages []Stage
}

// NewChain builds a chain from ordered stages.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

// Run executes the chain against the request.
func (c *Chain) Run(ctx context.Context, req *Request) error {
	for _, stage := range c.stages {
		if err := stage(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EmailFormat rejects empty or malformed email addresses.
func EmailFormat() Stage {
	return func(ctx context.Context, req *Request) error {
		if strings.TrimSpace(req.Email) == "" {
			return apperrors.NewValidationError("email must not be empty", nil)
		}
		if !emailPattern.MatchString(req.Email) {
			return apperrors.NewValidationError("email format is invalid", map[string]any{"email": req.Email})
		}
		return nil
	}
}

// PasswordStrength requires at least 8 characters with an uppercase letter,
// a lowercase letter, and a digit.
func PasswordStrength() Stage {
	return func(ctx context.Context, req *Request) error {
		if req.Password == "" {
			return apperrors.NewValidationError("password must not be empty", nil)
		}
		var hasUpper, hasLower, hasDigit bool
		for _, r := range req.Password {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		if len(req.Password) < 8 || !hasUpper || !hasLower || !hasDigit {
			return apperrors.NewValidationError(
				"password must be at least 8 characters with an uppercase letter, a lowercase letter, and a digit", nil)
		}
		return nil
	}
}

// ConfirmMatch requires the confirmation field to equal the password.
func ConfirmMatch() Stage {
	return func(ctx context.Context, req *Request) error {
		if req.ConfirmPassword == "" {
			return apperrors.NewValidationError("password confirmation must not be empty", nil)
		}
		if req.ConfirmPassword != req.Password {
			return apperrors.NewValidationError("password confirmation does not match", nil)
		}
		return nil
	}
}

// EmailUnique rejects emails already present in the user table. A missing
// table counts as empty so first-run registration succeeds.
func EmailUnique(users repository.UserRepository) Stage {
	return func(ctx context.Context, req *Request) error {
		_, err := users.GetByEmail(ctx, req.Email)
		if err == nil {
			return apperrors.NewConflict("email already registered", map[string]any{"email": req.Email})
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
}

// RequiredFields requires name, address, and contact to be present.
func RequiredFields() Stage {
	return func(ctx context.Context, req *Request) error {
		fields := map[string]string{
			"name":    req.Name,
			"address": req.Address,
			"contact": req.Contact,
		}
		for _, key := range []string{"name", "address", "contact"} {
			if strings.TrimSpace(fields[key]) == "" {
				return apperrors.NewValidationError(key+" must not be empty", nil)
			}
		}
		return nil
	}
}

// PersistUser inserts the account. Resellers start unverified and wait for
// an admin; admins and shippers are verified on creation.
func PersistUser(users repository.UserRepository, hash func(string) (string, error)) Stage {
	return func(ctx context.Context, req *Request) error {
		passwordHash, err := hash(req.Password)
		if err != nil {
			return err
		}

		status := domain.UserStatusVerified
		if req.Role == domain.RoleReseller {
			status = domain.UserStatusUnverified
		}

		user := &domain.User{
			Email:        req.Email,
			PasswordHash: passwordHash,
			Name:         strings.TrimSpace(req.Name),
			Address:      strings.TrimSpace(req.Address),
			Contact:      strings.TrimSpace(req.Contact),
			Status:       status,
			Role:         req.Role,
			CreatedAt:    time.Now().UTC(),
		}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperrors.NewConflict("email already registered", map[string]any{"email": req.Email})
			}
			return err
		}
		req.Created = user
		return nil
	}
}

// VerificationGate is the single-stage chain run at login after the
// credential match: unverified accounts may not log in.
func VerificationGate(users repository.UserRepository) Stage {
	return func(ctx context.Context, req *Request) error {
		user, err := users.GetByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewUnauthorized("invalid credentials")
			}
			return err
		}
		if user.Status != domain.UserStatusVerified {
			return apperrors.NewForbidden("account not verified by an admin yet")
		}
		return nil
	}
}
