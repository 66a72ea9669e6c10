package models

import "time"

// CartItem is one line of a session's pending order. Menu item fields are
// snapshotted at insertion time; a later catalog edit does not touch lines
// already in a cart. One row per (session, menu item).
type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionID    string    `gorm:"type:varchar(36);uniqueIndex:idx_session_menu_item;not null" json:"session_id"`
	MenuItemID   uint      `gorm:"uniqueIndex:idx_session_menu_item;not null" json:"menu_item_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category     string    `gorm:"type:varchar(100)" json:"category"`
	ImageURL     string    `gorm:"type:varchar(255)" json:"image_url"`
	Description  string    `gorm:"type:text" json:"description"`
	Quantity     int       `gorm:"not null;default:1;check:quantity>0" json:"quantity"`
	Instructions string    `gorm:"type:text" json:"special_instructions,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// Subtotal is the line contribution to the cart total.
func (ci *CartItem) Subtotal() float64 {
	return ci.Price * float64(ci.Quantity)
}
