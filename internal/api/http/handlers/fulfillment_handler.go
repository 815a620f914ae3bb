package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/harmon-corp/reseller-service/internal/api/dto"
	"github.com/harmon-corp/reseller-service/internal/domain"
	"github.com/harmon-corp/reseller-service/internal/events"
	"github.com/harmon-corp/reseller-service/internal/service"
)

// FulfillmentHandler exposes order tracking and reporting endpoints.
type FulfillmentHandler struct {
	fulfillment *service.FulfillmentService
}

// NewFulfillmentHandler constructs handler.
func NewFulfillmentHandler(fulfillmentService *service.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{fulfillment: fulfillmentService}
}

// List handles GET /orders?status=…
func (h *FulfillmentHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	var (
		txns []domain.Transaction
		err  error
	)
	if status == "" {
		txns, err = h.fulfillment.ListAll(c.Context())
	} else {
		txns, err = h.fulfillment.ListByStatus(c.Context(), domain.TransactionStatus(status))
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": transactionResponses(txns)})
}

// Total handles GET /orders/total.
func (h *FulfillmentHandler) Total(c *fiber.Ctx) error {
	total, err := h.fulfillment.TotalExpenditure(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"total_expenditure": total}})
}

// Mine handles GET /orders/mine — the reseller's delivered order lines.
func (h *FulfillmentHandler) Mine(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	txns, err := h.fulfillment.DeliveredForReseller(c.Context(), principal.User.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": transactionResponses(txns)})
}

// Pack handles POST /orders/:id/pack.
func (h *FulfillmentHandler) Pack(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	txn, err := h.fulfillment.Pack(c.Context(), events.Actor{Email: principal.User.Email, Role: principal.Role}, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": transactionResponse(txn)})
}

// Deliver handles POST /orders/:id/deliver.
func (h *FulfillmentHandler) Deliver(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	txn, err := h.fulfillment.Deliver(c.Context(), events.Actor{Email: principal.User.Email, Role: principal.Role}, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": transactionResponse(txn)})
}

// ReportSales handles POST /orders/sales.
func (h *FulfillmentHandler) ReportSales(c *fiber.Ctx) error {
	principal, err := callerPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.SalesReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.fulfillment.ReportSales(c.Context(), principal.User.Email, req.ProductName, req.Quantity); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"product_name": req.ProductName,
		"quantity":     req.Quantity,
		"reported":     true,
	}})
}

func transactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          txn.ID,
		Email:       txn.Email,
		ProductName: txn.ProductName,
		Quantity:    txn.Quantity,
		Price:       txn.Price,
		Status:      string(txn.Status),
		TotalPrice:  txn.TotalPrice,
		CreatedAt:   txn.CreatedAt,
	}
}

func transactionResponses(txns []domain.Transaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, transactionResponse(&txns[i]))
	}
	return out
}
