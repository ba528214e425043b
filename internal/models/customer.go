package models

import "time"

// Customer owns zero or more Orders and at most one CustomerAccount.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:320;uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"size:15;not null" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Orders  []Order          `gorm:"constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	Account *CustomerAccount `gorm:"constraint:OnDelete:CASCADE" json:"account,omitempty"`
}
