package models

import "time"

type InventoryItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	CurrentStock int       `gorm:"not null" json:"current_stock"`
	MinStock     int       `gorm:"not null" json:"min_stock"`
	MaxStock     int       `gorm:"not null" json:"max_stock"`
	Unit         string    `gorm:"type:varchar(50);not null" json:"unit"`
	Category     string    `gorm:"type:varchar(100);index" json:"category"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"last_updated"`
}

// IsLowStock reports whether the item has fallen to or below its minimum.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.MinStock
}
