package finance

import (
	"sort"

	"propman-backend/internal/models"
)

// DefaultReminders is how many payments the reminder widget shows.
const DefaultReminders = 5

func statusRank(s models.PaymentStatus) int {
	switch s {
	case models.PaymentOverdue:
		return 0
	case models.PaymentPaid:
		return 2
	default:
		return 1
	}
}

// PaymentReminders picks the limit most pressing payments: overdue first,
// then pending, then paid, each group by due date, latest first.
func PaymentReminders(payments []models.Payment, limit int) []models.Payment {
	if limit <= 0 {
		limit = DefaultReminders
	}
	sorted := make([]models.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := statusRank(sorted[i].Status), statusRank(sorted[j].Status)
		if ri != rj {
			return ri < rj
		}
		return sorted[i].DueDate.After(sorted[j].DueDate)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
