package portfolio

import (
	"context"
	"log/slog"

	"propman-backend/internal/models"
	"propman-backend/internal/store"
)

func (s *Service) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	return s.store.ListTenants(ctx)
}

func (s *Service) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	return s.store.GetTenant(ctx, id)
}

func (s *Service) AddTenant(ctx context.Context, t *models.Tenant) error {
	if err := s.store.AddTenant(ctx, t); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) UpdateTenant(ctx context.Context, t *models.Tenant) (*models.Tenant, error) {
	var before *models.Tenant
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		var err error
		if before, err = tx.GetTenant(ctx, t.ID); err != nil {
			return err
		}
		t.CreatedAt = before.CreatedAt
		return tx.UpdateTenant(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return before, nil
}

// DeleteTenant clears the tenant from its contracts and units.
func (s *Service) DeleteTenant(ctx context.Context, id string) (*models.Tenant, error) {
	var deleted *models.Tenant
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		t, err := tx.GetTenant(ctx, id)
		if err != nil {
			return err
		}
		contracts, err := tx.DetachContractsFromTenant(ctx, id)
		if err != nil {
			return err
		}
		units, err := tx.DetachUnitsFromTenant(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteTenant(ctx, id); err != nil {
			return err
		}
		slog.Info("tenant deleted", "tenant_id", id, "contracts_detached", contracts, "units_detached", units)
		deleted = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return deleted, nil
}
