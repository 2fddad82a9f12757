package store

import (
	"context"
	"fmt"

	"propman-backend/internal/models"
)

// The helpers below clear dangling references left behind by a delete.
// They are meant to run inside WithTx.

func (s *Store) DetachTenantsFromProperty(ctx context.Context, propertyID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("property_id = ?", propertyID).
		Updates(map[string]any{"property_id": "", "unit_id": ""})
	if res.Error != nil {
		return 0, fmt.Errorf("detach tenants from property %s: %w", propertyID, res.Error)
	}
	return res.RowsAffected, nil
}

// DetachContractsFromProperty also terminates the contracts, a lease
// without a property cannot stay active.
func (s *Store) DetachContractsFromProperty(ctx context.Context, propertyID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Contract{}).
		Where("property_id = ?", propertyID).
		Updates(map[string]any{
			"property_id": "",
			"unit_id":     "",
			"status":      models.ContractTerminated,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("detach contracts from property %s: %w", propertyID, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) DetachExpensesFromProperty(ctx context.Context, propertyID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Expense{}).
		Where("property_id = ?", propertyID).
		Update("property_id", "")
	if res.Error != nil {
		return 0, fmt.Errorf("detach expenses from property %s: %w", propertyID, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) DetachTenantsFromContract(ctx context.Context, contractID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("contract_id = ?", contractID).
		Update("contract_id", "")
	if res.Error != nil {
		return 0, fmt.Errorf("detach tenants from contract %s: %w", contractID, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) DetachContractsFromTenant(ctx context.Context, tenantID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Contract{}).
		Where("tenant_id = ?", tenantID).
		Update("tenant_id", "")
	if res.Error != nil {
		return 0, fmt.Errorf("detach contracts from tenant %s: %w", tenantID, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) DetachUnitsFromTenant(ctx context.Context, tenantID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.PropertyUnit{}).
		Where("tenant_id = ?", tenantID).
		Update("tenant_id", "")
	if res.Error != nil {
		return 0, fmt.Errorf("detach units from tenant %s: %w", tenantID, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) DeletePaymentsForContract(ctx context.Context, contractID string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Delete(&models.Payment{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete payments of contract %s: %w", contractID, res.Error)
	}
	return res.RowsAffected, nil
}
