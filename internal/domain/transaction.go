package domain

import "time"

// TransactionStatus enumerates fulfillment states of a purchased order line.
type TransactionStatus string

const (
	TransactionStatusUnpacked  TransactionStatus = "unpacked"
	TransactionStatusPacked    TransactionStatus = "packed"
	TransactionStatusDelivered TransactionStatus = "delivered"
)

// nextStatus maps each status to its only legal successor. Delivered is
// terminal; transitions never move backward.
var nextStatus = map[TransactionStatus]TransactionStatus{
	TransactionStatusUnpacked: TransactionStatusPacked,
	TransactionStatusPacked:   TransactionStatusDelivered,
}

// CanTransition reports whether a status may advance to the target.
func CanTransition(from, to TransactionStatus) bool {
	return nextStatus[from] == to
}

// Transaction is one purchased order line awaiting fulfillment.
type Transaction struct {
	ID          string
	Email       string
	ProductName string
	Quantity    int
	Price       float64
	Status      TransactionStatus
	TotalPrice  float64
	CreatedAt   time.Time
}
