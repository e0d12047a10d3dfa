package model

import "time"

// PaymentStatus is the payment state of an order. pending is the only
// non-terminal state; terminal states are sinks, so a redelivered gateway
// notification can never double-advance an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed || s == PaymentStatusCancelled
}

// CanTransition reports whether moving from s to target is allowed.
// Only pending → terminal moves are valid.
func (s PaymentStatus) CanTransition(target PaymentStatus) bool {
	return s == PaymentStatusPending && target.IsTerminal()
}

// Payment is the external correlation record for a single payment attempt,
// 1:1 with an order. SessionID equals the order number on the gateway side.
type Payment struct {
	PaymentID      int64         `json:"payment_id"`
	OrderID        int64         `json:"order_id"`
	Amount         int64         `json:"amount"` // minor currency units
	Currency       string        `json:"currency"`
	Status         PaymentStatus `json:"status"`
	Provider       string        `json:"provider"`
	SessionID      string        `json:"session_id"`
	GatewayOrderID *string       `json:"gateway_order_id,omitempty"`
	Payload        []byte        `json:"payload,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
}
