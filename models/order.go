package models

import "time"

// OrderStatus is the lifecycle label of an order. Staff may move an order
// between any two statuses; there is no enforced transition graph, so a
// served order can be reopened for correction.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCompleted OrderStatus = "completed"
)

// AllOrderStatuses lists every valid status, in the usual kitchen order.
var AllOrderStatuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusServed,
	StatusCompleted,
}

func IsValidOrderStatus(s string) bool {
	for _, st := range AllOrderStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	TableNumber  int         `gorm:"not null" json:"table_number"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// Total is computed once from the cart at submission and never
	// recomputed, so later catalog price edits do not drift history.
	Total        float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	CustomerName string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	WaiterID     *uint       `gorm:"index" json:"waiter_id,omitempty"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt    time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}
