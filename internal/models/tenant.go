package models

import (
	"time"

	"gorm.io/gorm"
)

type Tenant struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	Email      string    `gorm:"size:200" json:"email"`
	Phone      string    `gorm:"size:50" json:"phone"`
	CPF        string    `gorm:"column:cpf;size:20" json:"cpf"`
	Occupants  int       `json:"occupants"`
	PropertyID string    `gorm:"size:36;index" json:"property_id"`
	UnitID     string    `gorm:"size:36" json:"unit_id,omitempty"`
	ContractID string    `gorm:"size:36;index" json:"contract_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	t.ID = newID(t.ID)
	return nil
}
