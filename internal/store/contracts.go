package store

import (
	"context"
	"time"

	"propman-backend/internal/models"
)

func (s *Store) ListContracts(ctx context.Context) ([]models.Contract, error) {
	return list[models.Contract](ctx, s.db, "contracts")
}

func (s *Store) GetContract(ctx context.Context, id string) (*models.Contract, error) {
	return get[models.Contract](ctx, s.db, "contract", id)
}

func (s *Store) AddContract(ctx context.Context, v *models.Contract) error {
	v.ID = ""
	v.CreatedAt = time.Time{}
	return create(ctx, s.db, "contract", v)
}

func (s *Store) UpdateContract(ctx context.Context, v *models.Contract) error {
	return replace(ctx, s.db, "contract", v)
}

func (s *Store) DeleteContract(ctx context.Context, id string) error {
	return remove[models.Contract](ctx, s.db, "contract", id)
}
