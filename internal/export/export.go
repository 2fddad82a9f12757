// Package export renders payments and the cash-flow series as xlsx
// workbooks.
package export

import (
	"fmt"
	"sort"
	"time"

	"propman-backend/internal/finance"
	"propman-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	PaymentsSheet   = "Payments"
	FinancialsSheet = "Financials"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateLayout = "2006-01-02"
)

func newWorkbook(sheet string, headers []string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	return f.SetSheetRow(sheet, cell, &values)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Payments lists every payment, latest due date first, with the property
// and tenant it belongs to.
func Payments(payments []models.Payment, dir *finance.Directory) (*excelize.File, error) {
	f, err := newWorkbook(PaymentsSheet, []string{
		"Contract", "Property", "Tenant", "Due date", "Paid on", "Amount", "Late fee", "Status", "Method",
	})
	if err != nil {
		return nil, fmt.Errorf("payments workbook: %w", err)
	}

	sorted := make([]models.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.After(sorted[j].DueDate)
	})

	for i, p := range sorted {
		property, tenant := dir.PaymentParties(p)
		err := setRow(f, PaymentsSheet, i+2, []any{
			p.ContractID,
			property,
			tenant,
			formatDate(p.DueDate),
			formatDate(p.Date),
			p.Amount,
			p.LateFee,
			string(p.Status),
			p.PaymentMethod,
		})
		if err != nil {
			return nil, fmt.Errorf("payments workbook row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// Financials writes one row per month of the series.
func Financials(rows []finance.MonthlyFinancials) (*excelize.File, error) {
	f, err := newWorkbook(FinancialsSheet, []string{"Month", "Income", "Expenses", "Net income"})
	if err != nil {
		return nil, fmt.Errorf("financials workbook: %w", err)
	}
	for i, m := range rows {
		if err := setRow(f, FinancialsSheet, i+2, []any{m.Label, m.Income, m.Expenses, m.NetIncome}); err != nil {
			return nil, fmt.Errorf("financials workbook row %d: %w", i+2, err)
		}
	}
	return f, nil
}
