package portfolio

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"propman-backend/internal/finance"
	"propman-backend/internal/models"
	"propman-backend/internal/store"
)

type LateFeeQuote struct {
	PaymentID     string               `json:"payment_id"`
	Status        models.PaymentStatus `json:"status"`
	DueDate       time.Time            `json:"due_date"`
	DaysLate      int                  `json:"days_late"`
	GraceDays     int                  `json:"grace_days"`
	Percentage    float64              `json:"late_fee_percentage"`
	Fee           float64              `json:"late_fee"`
	StoredFee     float64              `json:"stored_late_fee"`
	ContractFound bool                 `json:"contract_found"`
}

// LateFee prices the late fee a payment owes today. Nothing is written.
func (s *Service) LateFee(ctx context.Context, paymentID string) (*LateFeeQuote, error) {
	p, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	q := &LateFeeQuote{
		PaymentID: p.ID,
		Status:    p.Status,
		DueDate:   p.DueDate,
		DaysLate:  finance.DaysLate(p.DueDate, now),
		StoredFee: p.LateFee,
	}

	c, err := s.store.GetContract(ctx, p.ContractID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if c != nil {
		q.ContractFound = true
		q.GraceDays = c.LateFeeDays
		q.Percentage = c.LateFeePercentage
	}
	q.Fee = finance.CalculateLateFee(*p, c, now)
	return q, nil
}

type LateFeeChange struct {
	PaymentID string  `json:"payment_id"`
	Previous  float64 `json:"previous_late_fee"`
	Fee       float64 `json:"late_fee"`

	Before models.Payment `json:"-"`
	After  models.Payment `json:"-"`
}

// ApplyLateFees stores the current late fee on every overdue payment whose
// stored fee is out of date. With dryRun the changes are only reported.
func (s *Service) ApplyLateFees(ctx context.Context, dryRun bool) ([]LateFeeChange, error) {
	now := s.now()
	var changes []LateFeeChange

	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		overdue, err := tx.ListPaymentsByStatus(ctx, models.PaymentOverdue)
		if err != nil {
			return err
		}
		contracts, err := tx.ListContracts(ctx)
		if err != nil {
			return err
		}
		dir := finance.NewDirectory(nil, nil, contracts)

		for i := range overdue {
			p := overdue[i]
			fee := dir.LateFee(p, now)
			if fee == p.LateFee {
				continue
			}
			after := p
			after.LateFee = fee
			changes = append(changes, LateFeeChange{
				PaymentID: p.ID,
				Previous:  p.LateFee,
				Fee:       fee,
				Before:    p,
				After:     after,
			})
			if dryRun {
				continue
			}
			if err := tx.UpdatePayment(ctx, &after); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !dryRun && len(changes) > 0 {
		s.changed(ctx)
	}
	slog.Info("late fees evaluated", "changed", len(changes), "dry_run", dryRun)
	return changes, nil
}
