package models

import (
	"time"

	"gorm.io/gorm"
)

type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeBuilding   PropertyType = "building"
	PropertyTypeLot        PropertyType = "lot"
)

// HasUnits reports whether properties of this type are split into units.
func (t PropertyType) HasUnits() bool {
	return t == PropertyTypeBuilding || t == PropertyTypeLot
}

type OccupancyStatus string

const (
	StatusOccupied    OccupancyStatus = "occupied"
	StatusVacant      OccupancyStatus = "vacant"
	StatusMaintenance OccupancyStatus = "maintenance"
)

// Property is a rentable asset. Buildings and lots may carry units.
type Property struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Address     string          `gorm:"size:500" json:"address"`
	Type        PropertyType    `gorm:"size:20;index" json:"type"`
	Bedrooms    *int            `json:"bedrooms,omitempty"`
	Bathrooms   *int            `json:"bathrooms,omitempty"`
	Area        float64         `json:"area"`
	Description string          `gorm:"size:2000" json:"description"`
	Status      OccupancyStatus `gorm:"size:20;index" json:"status"`
	ImageURL    string          `gorm:"size:500" json:"image_url,omitempty"`
	Units       []PropertyUnit  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"units,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	p.ID = newID(p.ID)
	return nil
}

// PropertyUnit is a sub-lettable part of a property.
type PropertyUnit struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	PropertyID  string          `gorm:"size:36;index" json:"property_id"`
	UnitNumber  string          `gorm:"size:50" json:"unit_number"`
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   int             `json:"bathrooms"`
	Area        float64         `json:"area"`
	MonthlyRent float64         `json:"monthly_rent"`
	Status      OccupancyStatus `gorm:"size:20" json:"status"`
	TenantID    string          `gorm:"size:36;index" json:"tenant_id,omitempty"`
}

func (u *PropertyUnit) BeforeCreate(tx *gorm.DB) error {
	u.ID = newID(u.ID)
	return nil
}
