package store

import (
	"context"
	"fmt"
	"time"

	"propman-backend/internal/models"
)

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return list[models.Payment](ctx, s.db, "payments")
}

func (s *Store) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	return get[models.Payment](ctx, s.db, "payment", id)
}

func (s *Store) AddPayment(ctx context.Context, v *models.Payment) error {
	v.ID = ""
	v.CreatedAt = time.Time{}
	return create(ctx, s.db, "payment", v)
}

// UpdatePayment is a full replace, see replace.
func (s *Store) UpdatePayment(ctx context.Context, v *models.Payment) error {
	return replace(ctx, s.db, "payment", v)
}

func (s *Store) DeletePayment(ctx context.Context, id string) error {
	return remove[models.Payment](ctx, s.db, "payment", id)
}

// ListPaymentsByStatus is used by the late fee job, which only cares about
// overdue payments.
func (s *Store) ListPaymentsByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	var out []models.Payment
	if err := s.db.WithContext(ctx).Where("status = ?", status).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %s payments: %w", status, err)
	}
	return out, nil
}
