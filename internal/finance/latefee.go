package finance

import (
	"time"

	"propman-backend/internal/models"
)

// DaysLate counts whole days elapsed since due, truncated toward zero.
func DaysLate(due, now time.Time) int {
	return int(now.Sub(due) / (24 * time.Hour))
}

// CalculateLateFee applies the contract's late fee policy to an overdue
// payment. Payments that are not overdue, payments without a contract and
// payments still inside the grace period owe nothing. A payment exactly
// lateFeeDays late is still within the grace period.
//
// Nothing is persisted; callers store the result when they want it kept.
func CalculateLateFee(p models.Payment, c *models.Contract, now time.Time) float64 {
	if p.Status != models.PaymentOverdue || c == nil {
		return 0
	}
	if DaysLate(p.DueDate, now) <= c.LateFeeDays {
		return 0
	}
	return p.Amount * (c.LateFeePercentage / 100)
}

// LateFeeFor looks up the payment's contract in contracts and prices it.
func LateFeeFor(p models.Payment, contracts []models.Contract, now time.Time) float64 {
	for i := range contracts {
		if contracts[i].ID == p.ContractID {
			return CalculateLateFee(p, &contracts[i], now)
		}
	}
	return 0
}
