package model

import "time"

// Payment methods accepted at checkout.
const (
	PaymentMethodCOD        = "cod"
	PaymentMethodPrzelewy24 = "przelewy24"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further fulfilment transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents an entry in the orders table. The item list and the
// captured per-item prices are immutable after creation; only Status,
// PaymentStatus and P24Token change post-creation.
type Order struct {
	OrderID         int64         `json:"orderid"`
	OrderNumber     string        `json:"ordernumber"`
	CustomerName    string        `json:"customername"`
	CustomerEmail   string        `json:"customeremail"`
	CustomerPhone   string        `json:"customerphone"`
	CustomerAddress string        `json:"customeraddress"`
	CustomerCity    string        `json:"customercity"`
	CustomerZip     string        `json:"customerzip"`
	PaymentMethod   string        `json:"paymentmethod"`
	PaymentStatus   PaymentStatus `json:"paymentstatus"`
	Status          OrderStatus   `json:"status"`
	TotalAmount     float64       `json:"totalamount"`
	Currency        string        `json:"currency"`
	Notes           *string       `json:"notes,omitempty"`
	P24Token        *string       `json:"p24token,omitempty"`
	CreatedAt       *time.Time    `json:"created_at,omitempty"`
}

// OrderItem represents a row in the order_items table. PriceAtPurchase is
// a snapshot of the catalog price at order time, decoupled from future
// catalog changes.
type OrderItem struct {
	OrderItemID     int64   `json:"orderitemid"`
	OrderID         int64   `json:"orderid"`
	ProductKitID    int64   `json:"productkitid"`
	SKU             string  `json:"sku"`
	Name            string  `json:"name"`
	PriceAtPurchase float64 `json:"priceatpurchase"`
	Quantity        int     `json:"quantity"`
}
