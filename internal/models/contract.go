package models

import (
	"time"

	"gorm.io/gorm"
)

type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractExpired    ContractStatus = "expired"
	ContractTerminated ContractStatus = "terminated"
)

// Contract is a lease between one tenant and one property or unit.
type Contract struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	PropertyID        string         `gorm:"size:36;index" json:"property_id"`
	UnitID            string         `gorm:"size:36" json:"unit_id,omitempty"`
	TenantID          string         `gorm:"size:36;index" json:"tenant_id"`
	StartDate         time.Time      `json:"start_date"`
	EndDate           time.Time      `json:"end_date"`
	MonthlyRent       float64        `json:"monthly_rent"`
	DepositAmount     float64        `json:"deposit_amount"`
	PaymentDueDay     int            `json:"payment_due_day"`     // 1..31
	LateFeeDays       int            `json:"late_fee_days"`       // grace period
	LateFeePercentage float64        `json:"late_fee_percentage"` // 0..100
	Status            ContractStatus `gorm:"size:20;index" json:"status"`
	ContractFile      string         `gorm:"size:500" json:"contract_file,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	c.ID = newID(c.ID)
	return nil
}
