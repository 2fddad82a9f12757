package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

type Payment struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	ContractID    string        `gorm:"size:36;index" json:"contract_id"`
	Amount        float64       `json:"amount"`
	Date          time.Time     `gorm:"index" json:"date"` // zero until paid
	DueDate       time.Time     `gorm:"index" json:"due_date"`
	Status        PaymentStatus `gorm:"size:20;index" json:"status"`
	LateFee       float64       `json:"late_fee"`
	PaymentMethod string        `gorm:"size:50" json:"payment_method,omitempty"`
	Notes         string        `gorm:"size:1000" json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	p.ID = newID(p.ID)
	return nil
}
