package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "storefront/pkg/domain-errors"
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// transitions is the closed graph of allowed status moves. Cancellation is
// only reachable while the order has not shipped.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether the move from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Item is a single order line. UnitPrice is captured at order time so later
// catalog changes never alter a placed order.
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

// Subtotal is the line total.
func (i Item) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Order is the aggregate for a placed purchase. Payment details never leave
// the validation path; only the masked summary and the variant tag are kept.
//
// Invariants:
//   - At least one item; every quantity is positive
//   - Status transitions follow the transition graph
//   - Total equals the sum of line subtotals
type Order struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Items          []Item    `json:"items"`
	Status         Status    `json:"status"`
	PaymentType    string    `json:"payment_type"`
	PaymentSummary string    `json:"payment_summary"`
	Total          float64   `json:"total"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewOrder constructs a pending order, computing the total from its lines.
func NewOrder(id, userID uuid.UUID, items []Item, paymentType, paymentSummary string, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "order requires at least one item")
	}
	var total float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "item quantity must be positive")
		}
		total += item.Subtotal()
	}
	return &Order{
		ID:             id,
		UserID:         userID,
		Items:          items,
		Status:         StatusPending,
		PaymentType:    paymentType,
		PaymentSummary: paymentSummary,
		Total:          total,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Transition moves the order to next, enforcing the graph.
func (o *Order) Transition(next Status, now time.Time) error {
	if !next.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "invalid status")
	}
	if !o.Status.CanTransition(next) {
		return dErrors.New(dErrors.CodeConflict,
			"cannot move order from "+string(o.Status)+" to "+string(next))
	}
	o.Status = next
	o.UpdatedAt = now
	return nil
}
