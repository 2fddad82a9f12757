package portfolio

import (
	"context"
	"log/slog"

	"propman-backend/internal/models"
	"propman-backend/internal/store"
)

// Only buildings and lots keep units.
func normalizeUnits(p *models.Property) {
	if !p.Type.HasUnits() {
		p.Units = nil
	}
}

func (s *Service) ListProperties(ctx context.Context) ([]models.Property, error) {
	return s.store.ListProperties(ctx)
}

func (s *Service) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	return s.store.GetProperty(ctx, id)
}

func (s *Service) AddProperty(ctx context.Context, p *models.Property) error {
	normalizeUnits(p)
	if err := s.store.AddProperty(ctx, p); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// UpdateProperty replaces the whole property, units included, and returns
// the previous version. Only the creation time is carried over.
func (s *Service) UpdateProperty(ctx context.Context, p *models.Property) (*models.Property, error) {
	normalizeUnits(p)
	var before *models.Property
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		var err error
		if before, err = tx.GetProperty(ctx, p.ID); err != nil {
			return err
		}
		p.CreatedAt = before.CreatedAt
		return tx.UpdateProperty(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return before, nil
}

// DeleteProperty removes a property and detaches everything that pointed at
// it: tenants lose property and unit, contracts lose them too and are
// terminated, expenses lose the property.
func (s *Service) DeleteProperty(ctx context.Context, id string) (*models.Property, error) {
	var deleted *models.Property
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		p, err := tx.GetProperty(ctx, id)
		if err != nil {
			return err
		}
		tenants, err := tx.DetachTenantsFromProperty(ctx, id)
		if err != nil {
			return err
		}
		contracts, err := tx.DetachContractsFromProperty(ctx, id)
		if err != nil {
			return err
		}
		expenses, err := tx.DetachExpensesFromProperty(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteProperty(ctx, id); err != nil {
			return err
		}
		slog.Info("property deleted",
			"property_id", id,
			"tenants_detached", tenants,
			"contracts_terminated", contracts,
			"expenses_detached", expenses,
		)
		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return deleted, nil
}
