package portfolio

import (
	"context"
	"log/slog"

	"propman-backend/internal/models"
	"propman-backend/internal/store"
)

func (s *Service) ListContracts(ctx context.Context) ([]models.Contract, error) {
	return s.store.ListContracts(ctx)
}

func (s *Service) GetContract(ctx context.Context, id string) (*models.Contract, error) {
	return s.store.GetContract(ctx, id)
}

func (s *Service) AddContract(ctx context.Context, c *models.Contract) error {
	if err := s.store.AddContract(ctx, c); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) UpdateContract(ctx context.Context, c *models.Contract) (*models.Contract, error) {
	var before *models.Contract
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		var err error
		if before, err = tx.GetContract(ctx, c.ID); err != nil {
			return err
		}
		c.CreatedAt = before.CreatedAt
		return tx.UpdateContract(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return before, nil
}

// DeleteContract frees what the lease occupied (the unit and its occupant
// when the contract names one, the property otherwise), detaches its tenant and removes every
// payment recorded against it.
func (s *Service) DeleteContract(ctx context.Context, id string) (*models.Contract, error) {
	var deleted *models.Contract
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		c, err := tx.GetContract(ctx, id)
		if err != nil {
			return err
		}
		switch {
		case c.UnitID != "":
			err = tx.VacateUnit(ctx, c.UnitID)
		case c.PropertyID != "":
			err = tx.SetPropertyStatus(ctx, c.PropertyID, models.StatusVacant)
		}
		if err != nil {
			return err
		}
		if _, err := tx.DetachTenantsFromContract(ctx, id); err != nil {
			return err
		}
		payments, err := tx.DeletePaymentsForContract(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteContract(ctx, id); err != nil {
			return err
		}
		slog.Info("contract deleted", "contract_id", id, "payments_removed", payments)
		deleted = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return deleted, nil
}

// AttachContractFile records the stored location of the signed lease.
func (s *Service) AttachContractFile(ctx context.Context, id, path string) (*models.Contract, error) {
	c, err := s.store.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	c.ContractFile = path
	if err := s.store.UpdateContract(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
