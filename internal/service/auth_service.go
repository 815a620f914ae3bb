package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/harmon-corp/reseller-service/internal/auth"
	"github.com/harmon-corp/reseller-service/internal/config"
	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/events"
	"github.com/harmon-corp/reseller-service/internal/registration"
	"github.com/harmon-corp/reseller-service/internal/repository"
	apperrors "github.com/harmon-corp/reseller-service/pkg/util"
)

// AuthService coordinates registration, login, and reseller verification.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register runs the validation chain and persists the account. The chain
// short-circuits at the first failing stage; persistence is the last stage.
func (s *AuthService) Register(ctx context.Context, req *registration.Request) (*domain.User, error) {
	if !domain.ValidRole(req.Role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(req.Role)})
	}

	chain := registration.NewChain(
		registration.EmailFormat(),
		registration.PasswordStrength(),
		registration.ConfirmMatch(),
		registration.EmailUnique(s.users),
		registration.RequiredFields(),
		registration.PersistUser(s.users, func(password string) (string, error) {
			return auth.HashPassword(password, s.bcryptCost)
		}),
	)
	if err := chain.Run(ctx, req); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:  events.EventUserRegistered,
		Actor: events.Actor{Email: req.Created.Email, Role: req.Created.Role},
		Payload: events.UserRegisteredPayload{
			Email:  req.Created.Email,
			Role:   req.Created.Role,
			Status: req.Created.Status,
		},
	})
	return req.Created, nil
}

// Login authenticates an account and applies the verification gate.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	gate := registration.NewChain(registration.VerificationGate(s.users))
	if err := gate.Run(ctx, &registration.Request{Email: email}); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// VerifyReseller marks a pending reseller account as verified.
func (s *AuthService) VerifyReseller(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("account", map[string]any{"email": email})
		}
		return err
	}
	if user.Status == domain.UserStatusVerified {
		return apperrors.NewConflict("account already verified", map[string]any{"email": email})
	}

	if err := s.users.UpdateStatus(ctx, email, domain.UserStatusVerified); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("account", map[string]any{"email": email})
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserVerified,
		Actor:   events.Actor{Email: email, Role: user.Role},
		Payload: events.UserVerifiedPayload{Email: email},
	})
	return nil
}

// ListUnverified returns accounts awaiting admin verification.
func (s *AuthService) ListUnverified(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByStatus(ctx, domain.UserStatusUnverified)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
