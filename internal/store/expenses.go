package store

import (
	"context"
	"time"

	"propman-backend/internal/models"
)

func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return list[models.Expense](ctx, s.db, "expenses")
}

func (s *Store) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	return get[models.Expense](ctx, s.db, "expense", id)
}

func (s *Store) AddExpense(ctx context.Context, v *models.Expense) error {
	v.ID = ""
	v.CreatedAt = time.Time{}
	return create(ctx, s.db, "expense", v)
}

func (s *Store) UpdateExpense(ctx context.Context, v *models.Expense) error {
	return replace(ctx, s.db, "expense", v)
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return remove[models.Expense](ctx, s.db, "expense", id)
}
