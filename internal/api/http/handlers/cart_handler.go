package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/harmon-corp/reseller-service/internal/api/dto"
	"github.com/harmon-corp/reseller-service/internal/auth"
	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/payment"
	"github.com/harmon-corp/reseller-service/internal/service"
)

// CartHandler exposes cart and checkout endpoints for resellers.
type CartHandler struct {
	checkout *service.CheckoutService
}

// NewCartHandler constructs handler.
func NewCartHandler(checkoutService *service.CheckoutService) *CartHandler {
	return &CartHandler{checkout: checkoutService}
}

// View handles GET /cart.
func (h *CartHandler) View(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	lines, err := h.checkout.ViewCart(c.Context(), principal.User.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"lines": lines,
		"total": domain.CartTotal(lines),
	}})
}

// Add handles POST /cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AddCartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	line, err := h.checkout.AddToCart(c.Context(), principal.User.Email, req.ProductName, req.Quantity)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": line})
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.checkout.ClearCart(c.Context(), principal.User.Email); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Checkout handles POST /checkout.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.checkout.Checkout(c.Context(), principal.User.Email, payment.Method(req.PaymentMethod))
	if err != nil {
		return err
	}

	txns := make([]dto.TransactionResponse, 0, len(result.Transactions))
	for i := range result.Transactions {
		txns = append(txns, transactionResponse(&result.Transactions[i]))
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CheckoutResponse{
		Receipt:      result.Receipt,
		TotalAmount:  result.TotalAmount,
		Transactions: txns,
	}})
}

func callerPrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return principal, nil
}
