package portfolio

import (
	"context"

	"propman-backend/internal/models"
)

// The Restore methods write an earlier image of an entity back verbatim,
// id and creation time included. A missing row is recreated. They serve
// undo and do not replay the cascades a delete applied.

func (s *Service) RestoreProperty(ctx context.Context, p *models.Property) error {
	if err := s.store.UpdateProperty(ctx, p); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) RestoreTenant(ctx context.Context, t *models.Tenant) error {
	if err := s.store.UpdateTenant(ctx, t); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) RestoreContract(ctx context.Context, c *models.Contract) error {
	if err := s.store.UpdateContract(ctx, c); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) RestorePayment(ctx context.Context, p *models.Payment) error {
	if err := s.store.UpdatePayment(ctx, p); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) RestoreExpense(ctx context.Context, e *models.Expense) error {
	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}
