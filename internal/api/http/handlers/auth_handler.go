package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/harmon-corp/reseller-service/internal/api/dto"
	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/registration"
	"github.com/harmon-corp/reseller-service/internal/service"
)

// AuthHandler exposes registration, login, and verification endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.auth.Register(c.Context(), &registration.Request{
		Email:           strings.TrimSpace(req.Email),
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Name:            req.Name,
		Address:         req.Address,
		Contact:         req.Contact,
		Role:            domain.Role(strings.ToLower(strings.TrimSpace(req.Role))),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": userProfile(user),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userProfile(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// ListUnverified handles GET /admin/resellers/unverified.
func (h *AuthHandler) ListUnverified(c *fiber.Ctx) error {
	users, err := h.auth.ListUnverified(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserProfile, 0, len(users))
	for i := range users {
		items = append(items, userProfile(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// VerifyReseller handles POST /admin/resellers/:email/verify.
func (h *AuthHandler) VerifyReseller(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}
	if err := h.auth.VerifyReseller(c.Context(), email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"email": email, "status": string(domain.UserStatusVerified)}})
}

func userProfile(user *domain.User) dto.UserProfile {
	return dto.UserProfile{
		Email:   user.Email,
		Name:    user.Name,
		Address: user.Address,
		Contact: user.Contact,
		Status:  string(user.Status),
		Role:    string(user.Role),
	}
}
