package models

import "github.com/shopspring/decimal"

// OrderItem is a denormalized snapshot of a menu item at order time. Price
// changes after ordering never rewrite historical orders.
type OrderItem struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ItemTotal decimal.Decimal `json:"itemTotal"`
}

type Order struct {
	OrderID     string          `json:"orderId"`
	TableNumber int             `json:"tableNumber"`
	SessionID   string          `json:"sessionId"`
	Items       []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	CreatedAt   int64           `json:"createdAt"`
	UpdatedAt   int64           `json:"updatedAt"`
	Notes       string          `json:"notes"`
}

const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)
