// Package finance holds the derived views of a portfolio: dashboard
// statistics, the monthly cash-flow series, late fees and the ordering and
// filtering rules the list views use. Everything here is pure.
package finance

import "propman-backend/internal/models"

// Stats is never persisted, it is recomputed from the collections.
type Stats struct {
	TotalProperties       int     `json:"total_properties"`
	OccupiedProperties    int     `json:"occupied_properties"`
	VacantProperties      int     `json:"vacant_properties"`
	MaintenanceProperties int     `json:"maintenance_properties"`
	TotalTenants          int     `json:"total_tenants"`
	PendingPayments       int     `json:"pending_payments"`
	OverduePayments       int     `json:"overdue_payments"`
	TotalIncome           float64 `json:"total_income"`
	TotalExpenses         float64 `json:"total_expenses"`
	NetIncome             float64 `json:"net_income"`
}

func ComputeStats(properties []models.Property, tenants []models.Tenant, payments []models.Payment, expenses []models.Expense) Stats {
	st := Stats{
		TotalProperties: len(properties),
		TotalTenants:    len(tenants),
	}

	for _, p := range properties {
		switch p.Status {
		case models.StatusOccupied:
			st.OccupiedProperties++
		case models.StatusVacant:
			st.VacantProperties++
		case models.StatusMaintenance:
			st.MaintenanceProperties++
		}
	}

	for _, p := range payments {
		switch p.Status {
		case models.PaymentPending:
			st.PendingPayments++
		case models.PaymentOverdue:
			st.OverduePayments++
		case models.PaymentPaid:
			st.TotalIncome += p.Amount + p.LateFee
		}
	}

	for _, e := range expenses {
		st.TotalExpenses += e.Amount
	}

	st.NetIncome = st.TotalIncome - st.TotalExpenses
	return st
}
