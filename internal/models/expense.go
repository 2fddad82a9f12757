package models

import (
	"time"

	"gorm.io/gorm"
)

type ExpenseCategory string

const (
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryUtilities   ExpenseCategory = "utilities"
	CategoryTaxes       ExpenseCategory = "taxes"
	CategoryInsurance   ExpenseCategory = "insurance"
	CategoryOther       ExpenseCategory = "other"
)

type Expense struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	PropertyID  string          `gorm:"size:36;index" json:"property_id"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `gorm:"index" json:"date"`
	Category    ExpenseCategory `gorm:"size:20;index" json:"category"`
	Description string          `gorm:"size:500" json:"description"`
	Receipt     string          `gorm:"size:500" json:"receipt,omitempty"`
	Recurring   bool            `json:"recurring"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	e.ID = newID(e.ID)
	return nil
}
