package store

import (
	"context"
	"fmt"
	"time"

	"propman-backend/internal/models"

	"gorm.io/gorm"
)

func (s *Store) ListProperties(ctx context.Context) ([]models.Property, error) {
	return list[models.Property](ctx, s.db, "properties", "Units")
}

func (s *Store) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	return get[models.Property](ctx, s.db, "property", id, "Units")
}

// AddProperty inserts p together with its units. Identifiers and the
// creation time are always assigned here.
func (s *Store) AddProperty(ctx context.Context, p *models.Property) error {
	p.ID = ""
	p.CreatedAt = time.Time{}
	for i := range p.Units {
		p.Units[i].ID = ""
		p.Units[i].PropertyID = ""
	}
	return create(ctx, s.db, "property", p)
}

// UpdateProperty replaces the stored property and its whole unit set.
func (s *Store) UpdateProperty(ctx context.Context, p *models.Property) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replace(ctx, tx, "property", p); err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", p.ID).Delete(&models.PropertyUnit{}).Error; err != nil {
			return fmt.Errorf("update property %s units: %w", p.ID, err)
		}
		for i := range p.Units {
			p.Units[i].PropertyID = p.ID
		}
		if len(p.Units) == 0 {
			return nil
		}
		if err := tx.Create(&p.Units).Error; err != nil {
			return fmt.Errorf("update property %s units: %w", p.ID, err)
		}
		return nil
	})
}

func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyUnit{}).Error; err != nil {
			return fmt.Errorf("delete property %s units: %w", id, err)
		}
		return remove[models.Property](ctx, tx, "property", id)
	})
}

// VacateUnit marks a unit vacant and clears its occupant.
func (s *Store) VacateUnit(ctx context.Context, unitID string) error {
	err := s.db.WithContext(ctx).Model(&models.PropertyUnit{}).
		Where("id = ?", unitID).
		Updates(map[string]any{"status": models.StatusVacant, "tenant_id": ""}).Error
	if err != nil {
		return fmt.Errorf("vacate unit %s: %w", unitID, err)
	}
	return nil
}

// SetPropertyStatus changes the occupancy of a property without touching
// any other column.
func (s *Store) SetPropertyStatus(ctx context.Context, id string, status models.OccupancyStatus) error {
	err := s.db.WithContext(ctx).Model(&models.Property{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("set property %s status: %w", id, err)
	}
	return nil
}
