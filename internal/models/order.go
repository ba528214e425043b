package models

import "time"

// Order belongs to a Customer and links to its Products through the
// order_products association table. The product set is always replaced as a
// whole, never patched link by link.
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Date       Date      `gorm:"not null" json:"date"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Products []Product `gorm:"many2many:order_products;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}
