package finance

import (
	"time"

	"propman-backend/internal/models"
)

// Categories in display order.
var Categories = []models.ExpenseCategory{
	models.CategoryMaintenance,
	models.CategoryUtilities,
	models.CategoryTaxes,
	models.CategoryInsurance,
	models.CategoryOther,
}

type CategoryTotal struct {
	Category models.ExpenseCategory `json:"category"`
	Total    float64                `json:"total"`
}

type ExpenseSummary struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Items      []CategoryTotal `json:"items"`
	GrandTotal float64         `json:"grand_total"`
}

// SummarizeExpenses totals one calendar month per category. Categories
// without expenses are left out; unknown categories count as other.
func SummarizeExpenses(expenses []models.Expense, year int, month time.Month) ExpenseSummary {
	want := monthKey{year: year, month: month}
	totals := make(map[models.ExpenseCategory]float64)
	sum := ExpenseSummary{Year: year, Month: int(month), Items: []CategoryTotal{}}

	for _, e := range expenses {
		if e.Date.IsZero() || keyOf(e.Date) != want {
			continue
		}
		cat := e.Category
		switch cat {
		case models.CategoryMaintenance, models.CategoryUtilities, models.CategoryTaxes, models.CategoryInsurance:
		default:
			cat = models.CategoryOther
		}
		totals[cat] += e.Amount
		sum.GrandTotal += e.Amount
	}

	for _, cat := range Categories {
		if total, ok := totals[cat]; ok {
			sum.Items = append(sum.Items, CategoryTotal{Category: cat, Total: total})
		}
	}
	return sum
}
