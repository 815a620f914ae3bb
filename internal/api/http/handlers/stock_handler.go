package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/harmon-corp/reseller-service/internal/api/dto"
	"github.com/harmon-corp/reseller-service/internal/auth"
	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/service"
)

// StockHandler exposes inventory endpoints.
type StockHandler struct {
	stock *service.StockService
}

// NewStockHandler constructs handler.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stock: stockService}
}

// List handles GET /stock.
func (h *StockHandler) List(c *fiber.Ctx) error {
	items, err := h.stock.View(c.Context())
	if err != nil {
		return err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, stockItemResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Add handles POST /stock.
func (h *StockHandler) Add(c *fiber.Ctx) error {
	caps, err := callerCapabilities(c)
	if err != nil {
		return err
	}
	var req dto.StockItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.stock.Add(c.Context(), caps, req.ItemName, req.Quantity, req.Price)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": stockItemResponse(*item)})
}

// Edit handles PUT /stock/:item.
func (h *StockHandler) Edit(c *fiber.Ctx) error {
	caps, err := callerCapabilities(c)
	if err != nil {
		return err
	}
	var req dto.StockItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.stock.Edit(c.Context(), caps, c.Params("item"), req.Quantity, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stockItemResponse(*item)})
}

// Delete handles DELETE /stock/:item.
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	caps, err := callerCapabilities(c)
	if err != nil {
		return err
	}
	if err := h.stock.Delete(c.Context(), caps, c.Params("item")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func callerCapabilities(c *fiber.Ctx) (domain.Capabilities, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return domain.Capabilities{}, fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return principal.Capabilities(), nil
}

func stockItemResponse(item domain.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{ItemName: item.ItemName, Quantity: item.Quantity, Price: item.Price}
}
