package portfolio

import (
	"context"

	"propman-backend/internal/models"
	"propman-backend/internal/store"
)

func (s *Service) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.store.ListPayments(ctx)
}

func (s *Service) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	return s.store.GetPayment(ctx, id)
}

func (s *Service) AddPayment(ctx context.Context, p *models.Payment) error {
	if err := s.store.AddPayment(ctx, p); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) UpdatePayment(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	var before *models.Payment
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		var err error
		if before, err = tx.GetPayment(ctx, p.ID); err != nil {
			return err
		}
		p.CreatedAt = before.CreatedAt
		return tx.UpdatePayment(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return before, nil
}

func (s *Service) DeletePayment(ctx context.Context, id string) (*models.Payment, error) {
	p, err := s.store.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeletePayment(ctx, id); err != nil {
		return nil, err
	}
	s.changed(ctx)
	return p, nil
}
