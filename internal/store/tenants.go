package store

import (
	"context"
	"time"

	"propman-backend/internal/models"
)

func (s *Store) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	return list[models.Tenant](ctx, s.db, "tenants")
}

func (s *Store) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	return get[models.Tenant](ctx, s.db, "tenant", id)
}

func (s *Store) AddTenant(ctx context.Context, v *models.Tenant) error {
	v.ID = ""
	v.CreatedAt = time.Time{}
	return create(ctx, s.db, "tenant", v)
}

// UpdateTenant overwrites every column; fields left empty by the caller are lost.
func (s *Store) UpdateTenant(ctx context.Context, v *models.Tenant) error {
	return replace(ctx, s.db, "tenant", v)
}

func (s *Store) DeleteTenant(ctx context.Context, id string) error {
	return remove[models.Tenant](ctx, s.db, "tenant", id)
}
