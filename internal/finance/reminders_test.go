package finance

import (
	"testing"
	"time"

	"propman-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ids(payments []models.Payment) []string {
	out := make([]string, 0, len(payments))
	for _, p := range payments {
		out = append(out, p.ID)
	}
	return out
}

func TestPaymentRemindersOrdering(t *testing.T) {
	payments := []models.Payment{
		{ID: "A", Status: models.PaymentOverdue, DueDate: day(2026, 1, 1)},
		{ID: "B", Status: models.PaymentPending, DueDate: day(2026, 3, 1)},
		{ID: "C", Status: models.PaymentPaid, DueDate: day(2026, 2, 1)},
		{ID: "D", Status: models.PaymentOverdue, DueDate: day(2026, 2, 15)},
	}

	got := PaymentReminders(payments, DefaultReminders)

	assert.Equal(t, []string{"D", "A", "B", "C"}, ids(got))
	assert.Equal(t, "A", payments[0].ID, "input must not be reordered")
}

func TestPaymentRemindersLimitAndUnknownStatus(t *testing.T) {
	payments := []models.Payment{
		{ID: "paid", Status: models.PaymentPaid, DueDate: day(2026, 6, 1)},
		{ID: "odd", Status: "disputed", DueDate: day(2026, 5, 1)},
		{ID: "pending", Status: models.PaymentPending, DueDate: day(2026, 4, 1)},
		{ID: "o1", Status: models.PaymentOverdue, DueDate: day(2026, 1, 1)},
		{ID: "o2", Status: models.PaymentOverdue, DueDate: day(2026, 1, 2)},
		{ID: "o3", Status: models.PaymentOverdue, DueDate: day(2026, 1, 3)},
	}

	got := PaymentReminders(payments, 0)

	assert.Equal(t, []string{"o3", "o2", "o1", "odd", "pending"}, ids(got))
}
