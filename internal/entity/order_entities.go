package entity

import "time"

// Customer is a row of the customers table, loaded fully into memory at
// startup.
type Customer struct {
	CustomerID string
	Email      string
}

// Order is a row of the orders table. OrderID is stored uppercase; lookups
// normalize their input to match.
type Order struct {
	OrderID    string
	CustomerID string
	Status     string
	Total      float64
	CreatedAt  time.Time
}

// Order statuses eligible for a refund.
const (
	OrderStatusSettled  = "settled"
	OrderStatusPrepping = "prepping"
)

// Refundable reports whether the order's status allows a refund.
func (o *Order) Refundable() bool {
	return o.Status == OrderStatusSettled || o.Status == OrderStatusPrepping
}
