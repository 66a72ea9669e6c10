package models

import "time"

// OrderItem is a by-value snapshot of a cart line at submission time.
// MenuItemID is kept for reference only; name, price and the other fields
// are copies, so deleting or editing the menu item leaves the order intact.
type OrderItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	Order        Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID   uint      `gorm:"not null" json:"menu_item_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category     string    `gorm:"type:varchar(100)" json:"category"`
	ImageURL     string    `gorm:"type:varchar(255)" json:"image_url"`
	Description  string    `gorm:"type:text" json:"description"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Instructions string    `gorm:"type:text" json:"special_instructions,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
