package models

import "time"

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(100);not null;index" json:"category"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"image_url"`
	Description string    `gorm:"type:text" json:"description"`
	// No default tag: gorm would omit the zero value false on insert and the
	// column default would win. CreateMenuItem defaults omitted fields to true.
	Available   bool      `gorm:"not null" json:"available"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
