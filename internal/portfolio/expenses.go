package portfolio

import (
	"context"

	"propman-backend/internal/models"
	"propman-backend/internal/store"
)

func (s *Service) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx)
}

func (s *Service) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

func (s *Service) AddExpense(ctx context.Context, e *models.Expense) error {
	if err := s.store.AddExpense(ctx, e); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) UpdateExpense(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	var before *models.Expense
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		var err error
		if before, err = tx.GetExpense(ctx, e.ID); err != nil {
			return err
		}
		e.CreatedAt = before.CreatedAt
		return tx.UpdateExpense(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return before, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id string) (*models.Expense, error) {
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return nil, err
	}
	s.changed(ctx)
	return e, nil
}

// AttachReceipt records the stored location of an expense receipt.
func (s *Service) AttachReceipt(ctx context.Context, id, path string) (*models.Expense, error) {
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Receipt = path
	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
