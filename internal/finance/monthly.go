package finance

import (
	"time"

	"propman-backend/internal/models"
)

// DefaultMonths is the length of the dashboard cash-flow series.
const DefaultMonths = 6

type MonthlyFinancials struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Label     string  `json:"month_label"`
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	NetIncome float64 `json:"net_income"`
}

type monthKey struct {
	year  int
	month time.Month
}

// keyOf buckets a calendar date. Dates are stored as UTC midnight, so the
// UTC calendar day is the one the user entered whatever zone the server runs in.
func keyOf(t time.Time) monthKey {
	t = t.UTC()
	return monthKey{year: t.Year(), month: t.Month()}
}

// Monthly returns one row per calendar month, from months-1 months before
// now up to the month of now, oldest first. Income is paid amount plus late
// fee of paid payments dated in the month; expenses are bucketed by date.
// Records with a zero date are skipped. The current month is taken in now's
// location.
func Monthly(now time.Time, payments []models.Payment, expenses []models.Expense, months int, locale string) []MonthlyFinancials {
	if months <= 0 {
		months = DefaultMonths
	}
	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(months - 1), 0)

	rows := make([]MonthlyFinancials, months)
	index := make(map[monthKey]int, months)
	for i := range rows {
		m := first.AddDate(0, i, 0)
		rows[i] = MonthlyFinancials{
			Year:  m.Year(),
			Month: int(m.Month()),
			Label: MonthLabel(m.Year(), m.Month(), locale),
		}
		index[monthKey{year: m.Year(), month: m.Month()}] = i
	}

	for _, p := range payments {
		if p.Status != models.PaymentPaid || p.Date.IsZero() {
			continue
		}
		if i, ok := index[keyOf(p.Date)]; ok {
			rows[i].Income += p.Amount + p.LateFee
		}
	}
	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		if i, ok := index[keyOf(e.Date)]; ok {
			rows[i].Expenses += e.Amount
		}
	}

	for i := range rows {
		rows[i].NetIncome = rows[i].Income - rows[i].Expenses
	}
	return rows
}

// PeriodMonths maps the chart period selector to a number of months.
func PeriodMonths(period string) (int, bool) {
	switch period {
	case "", "6months":
		return 6, true
	case "3months":
		return 3, true
	case "12months":
		return 12, true
	}
	return 0, false
}
