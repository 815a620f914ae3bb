package events

import (
	"time"

	"github.com/harmon-corp/reseller-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user.registered"
	EventUserVerified   EventType = "user.verified"
	EventOrderPlaced    EventType = "order.placed"
	EventOrderPacked    EventType = "order.packed"
	EventOrderDelivered EventType = "order.delivered"
)

// Actor encapsulates who triggered an event.
type Actor struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email  string            `json:"email"`
	Role   domain.Role       `json:"role"`
	Status domain.UserStatus `json:"status"`
}

// UserVerifiedPayload payload.
type UserVerifiedPayload struct {
	Email string `json:"email"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	Email          string  `json:"email"`
	LineCount      int     `json:"line_count"`
	TotalAmount    float64 `json:"total_amount"`
	PaymentReceipt string  `json:"payment_receipt"`
}

// OrderStatusPayload payload for pack/deliver events.
type OrderStatusPayload struct {
	TransactionID string                   `json:"transaction_id"`
	ProductName   string                   `json:"product_name"`
	NewStatus     domain.TransactionStatus `json:"new_status"`
}
