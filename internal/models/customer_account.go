package models

import "time"

// CustomerAccount is the one-to-one login record for a Customer. The unique
// index on CustomerID is what makes the relation one-to-one at the store
// level; the password hash never leaves the server.
type CustomerAccount struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CustomerID   uint      `gorm:"uniqueIndex;not null" json:"customer_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
