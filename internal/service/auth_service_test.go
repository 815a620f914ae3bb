package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/harmon-corp/reseller-service/internal/config"
	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/persistence"
	"github.com/harmon-corp/reseller-service/internal/registration"
	"github.com/harmon-corp/reseller-service/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	store, err := persistence.NewCSVStore(t.TempDir(), repository.TableHeaders(), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            4, // bcrypt.MinCost keeps tests fast
		},
	}
	return NewAuthService(cfg, repository.NewUserRepository(store), nil)
}

func registrationRequest(email string, role domain.Role) *registration.Request {
	return &registration.Request{
		Email:           email,
		Password:        "Abcdefg1",
		ConfirmPassword: "Abcdefg1",
		Name:            "Partner",
		Address:         "Jl. Merdeka 1",
		Contact:         "08123456789",
		Role:            role,
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registrationRequest(resellerEmail, domain.RoleReseller))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Status != domain.UserStatusUnverified {
		t.Errorf("reseller should start unverified, got %s", user.Status)
	}
	if user.PasswordHash == "Abcdefg1" {
		t.Error("password stored in plaintext")
	}

	// Unverified resellers cannot log in.
	_, _, _, err = svc.Login(ctx, resellerEmail, "Abcdefg1")
	if got := code(t, err); got != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN before verification, got %s", got)
	}

	if err := svc.VerifyReseller(ctx, resellerEmail); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	logged, token, _, err := svc.Login(ctx, resellerEmail, "Abcdefg1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("token did not parse: %v", err)
	}
	if claims.Email != resellerEmail || claims.Role != domain.RoleReseller {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if logged.Status != domain.UserStatusVerified {
		t.Errorf("expected verified account, got %s", logged.Status)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registrationRequest("admin@example.com", domain.RoleAdmin)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, _, err := svc.Login(ctx, "admin@example.com", "wrong-pass")
	if got := code(t, err); got != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED for wrong password, got %s", got)
	}
	_, _, _, err = svc.Login(ctx, "ghost@example.com", "Abcdefg1")
	if got := code(t, err); got != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED for unknown email, got %s", got)
	}
}

func TestAdminRegistersVerified(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registrationRequest("admin@example.com", domain.RoleAdmin))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Status != domain.UserStatusVerified {
		t.Errorf("admin should start verified, got %s", user.Status)
	}

	// Verified immediately, so login works with no admin action.
	if _, _, _, err := svc.Login(ctx, "admin@example.com", "Abcdefg1"); err != nil {
		t.Errorf("admin login failed: %v", err)
	}
}

func TestVerifyReseller(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	err := svc.VerifyReseller(ctx, "ghost@example.com")
	if got := code(t, err); got != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", got)
	}

	if _, err := svc.Register(ctx, registrationRequest(resellerEmail, domain.RoleReseller)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pending, err := svc.ListUnverified(ctx)
	if err != nil {
		t.Fatalf("list unverified failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Email != resellerEmail {
		t.Errorf("unexpected pending list: %v", pending)
	}

	if err := svc.VerifyReseller(ctx, resellerEmail); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	err = svc.VerifyReseller(ctx, resellerEmail)
	if got := code(t, err); got != "CONFLICT" {
		t.Errorf("expected CONFLICT on double verify, got %s", got)
	}

	pending, err = svc.ListUnverified(ctx)
	if err != nil {
		t.Fatalf("list unverified failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected empty pending list, got %v", pending)
	}
}

func TestRegisterUnknownRole(t *testing.T) {
	svc := newAuthService(t)

	req := registrationRequest(resellerEmail, domain.Role("pirate"))
	_, err := svc.Register(context.Background(), req)
	if got := code(t, err); got != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", got)
	}
}
