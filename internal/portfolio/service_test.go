package portfolio

import (
	"context"
	"testing"
	"time"

	"propman-backend/internal/finance"
	"propman-backend/internal/models"
	"propman-backend/internal/store"
	"propman-backend/internal/testutil"
	"propman-backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	st := store.New(testutil.OpenDB(t))
	return New(st, nil, WithClock(func() time.Time { return today }))
}

type fixture struct {
	property models.Property
	tenant   models.Tenant
	contract models.Contract
	paid     models.Payment
	overdue  models.Payment
	expense  models.Expense
}

func seedFixture(t *testing.T, s *Service) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{}

	f.property = models.Property{Name: "Casa Verde", Address: "Rua A, 10", Type: models.PropertyTypeHouse, Status: models.StatusOccupied}
	require.NoError(t, s.AddProperty(ctx, &f.property))

	f.tenant = models.Tenant{Name: "João Lima", Email: "joao@example.com", Occupants: 2, PropertyID: f.property.ID}
	require.NoError(t, s.AddTenant(ctx, &f.tenant))

	f.contract = models.Contract{
		PropertyID:        f.property.ID,
		TenantID:          f.tenant.ID,
		StartDate:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		MonthlyRent:       1000,
		PaymentDueDay:     5,
		LateFeeDays:       5,
		LateFeePercentage: 10,
		Status:            models.ContractActive,
	}
	require.NoError(t, s.AddContract(ctx, &f.contract))

	f.tenant.ContractID = f.contract.ID
	_, err := s.UpdateTenant(ctx, &f.tenant)
	require.NoError(t, err)

	f.paid = models.Payment{
		ContractID: f.contract.ID,
		Amount:     1000,
		DueDate:    time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		Date:       time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		Status:     models.PaymentPaid,
	}
	require.NoError(t, s.AddPayment(ctx, &f.paid))

	f.overdue = models.Payment{
		ContractID: f.contract.ID,
		Amount:     1000,
		DueDate:    time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		Status:     models.PaymentOverdue,
	}
	require.NoError(t, s.AddPayment(ctx, &f.overdue))

	f.expense = models.Expense{
		PropertyID:  f.property.ID,
		Amount:      200,
		Date:        time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC),
		Category:    models.CategoryMaintenance,
		Description: "roof repair",
	}
	require.NoError(t, s.AddExpense(ctx, &f.expense))
	return f
}

func TestDashboard(t *testing.T) {
	s := newService(t)
	f := seedFixture(t, s)

	d, err := s.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, d.Stats.TotalProperties)
	assert.Equal(t, 1, d.Stats.OccupiedProperties)
	assert.Equal(t, 1, d.Stats.OverduePayments)
	assert.InDelta(t, 1000, d.Stats.TotalIncome, 0.001)
	assert.InDelta(t, 800, d.Stats.NetIncome, 0.001)

	require.Len(t, d.Financials, finance.DefaultMonths)
	last := d.Financials[len(d.Financials)-1]
	assert.Equal(t, "out 2026", last.Label)
	assert.InDelta(t, 1000, last.Income, 0.001)
	assert.InDelta(t, 200, last.Expenses, 0.001)

	require.Len(t, d.Reminders, 2)
	first := d.Reminders[0]
	assert.Equal(t, f.overdue.ID, first.ID)
	assert.Equal(t, "Casa Verde", first.PropertyName)
	assert.Equal(t, "João Lima", first.TenantName)
	assert.InDelta(t, 100, first.AccruedFee, 0.001)

	require.Len(t, d.Properties, 1)
	assert.Equal(t, "João Lima", d.Properties[0].TenantName)
	assert.Equal(t, today, d.GeneratedAt)
}

func TestFinancialsWestOfUTC(t *testing.T) {
	ctx := context.Background()
	saoPaulo := time.FixedZone("BRT", -3*3600)
	s := New(store.New(testutil.OpenDB(t)), nil, WithClock(func() time.Time {
		return time.Date(2026, 10, 17, 9, 0, 0, 0, saoPaulo)
	}))

	req := validation.PaymentRequest{ContractID: "c1", Amount: 1000, Date: "2026-10-01", DueDate: "2026-10-05", Status: "paid"}
	require.NoError(t, req.Validate())
	require.NoError(t, s.AddPayment(ctx, req.Model()))

	rows, err := s.Financials(ctx, 6)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	sep, oct := rows[4], rows[5]
	assert.Equal(t, "out 2026", oct.Label)
	assert.InDelta(t, 1000, oct.Income, 0.001)
	assert.Zero(t, sep.Income)
}

func TestAddPropertyDropsUnitsOfSingleUnitTypes(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	house := models.Property{
		Name:  "Casa",
		Type:  models.PropertyTypeHouse,
		Units: []models.PropertyUnit{{UnitNumber: "1"}},
	}
	require.NoError(t, s.AddProperty(ctx, &house))
	got, err := s.GetProperty(ctx, house.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Units)

	lot := models.Property{
		Name:  "Lote 7",
		Type:  models.PropertyTypeLot,
		Units: []models.PropertyUnit{{UnitNumber: "A"}, {UnitNumber: "B"}},
	}
	require.NoError(t, s.AddProperty(ctx, &lot))
	got, err = s.GetProperty(ctx, lot.ID)
	require.NoError(t, err)
	assert.Len(t, got.Units, 2)
}

func TestUpdateReturnsPreviousVersion(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	f := seedFixture(t, s)

	changed := f.expense
	changed.Amount = 350
	before, err := s.UpdateExpense(ctx, &changed)
	require.NoError(t, err)
	assert.InDelta(t, 200, before.Amount, 0.001)

	_, err = s.UpdateExpense(ctx, &models.Expense{ID: "missing"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletePropertyCascades(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	f := seedFixture(t, s)

	deleted, err := s.DeleteProperty(ctx, f.property.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa Verde", deleted.Name)

	tenant, err := s.GetTenant(ctx, f.tenant.ID)
	require.NoError(t, err)
	assert.Empty(t, tenant.PropertyID)

	contract, err := s.GetContract(ctx, f.contract.ID)
	require.NoError(t, err)
	assert.Empty(t, contract.PropertyID)
	assert.Equal(t, models.ContractTerminated, contract.Status)

	expense, err := s.GetExpense(ctx, f.expense.ID)
	require.NoError(t, err)
	assert.Empty(t, expense.PropertyID)

	_, err = s.DeleteProperty(ctx, f.property.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteContractCascades(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	f := seedFixture(t, s)

	_, err := s.DeleteContract(ctx, f.contract.ID)
	require.NoError(t, err)

	property, err := s.GetProperty(ctx, f.property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVacant, property.Status)

	tenant, err := s.GetTenant(ctx, f.tenant.ID)
	require.NoError(t, err)
	assert.Empty(t, tenant.ContractID)

	payments, err := s.ListPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestDeleteContractFreesUnit(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	building := models.Property{
		Name:   "Edifício Sol",
		Type:   models.PropertyTypeBuilding,
		Status: models.StatusOccupied,
		Units:  []models.PropertyUnit{{UnitNumber: "101", Status: models.StatusOccupied}},
	}
	require.NoError(t, s.AddProperty(ctx, &building))
	unitID := building.Units[0].ID
	require.NotEmpty(t, unitID)

	tenant := models.Tenant{Name: "Rita", PropertyID: building.ID, UnitID: unitID}
	require.NoError(t, s.AddTenant(ctx, &tenant))
	building.Units[0].TenantID = tenant.ID
	_, err := s.UpdateProperty(ctx, &building)
	require.NoError(t, err)

	c := models.Contract{PropertyID: building.ID, UnitID: unitID, TenantID: tenant.ID, Status: models.ContractActive}
	require.NoError(t, s.AddContract(ctx, &c))
	_, err = s.DeleteContract(ctx, c.ID)
	require.NoError(t, err)

	got, err := s.GetProperty(ctx, building.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOccupied, got.Status, "property keeps its status")
	require.Len(t, got.Units, 1)
	assert.Equal(t, models.StatusVacant, got.Units[0].Status)
	assert.Empty(t, got.Units[0].TenantID)
}

func TestDeleteTenantCascades(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	f := seedFixture(t, s)

	_, err := s.DeleteTenant(ctx, f.tenant.ID)
	require.NoError(t, err)

	contract, err := s.GetContract(ctx, f.contract.ID)
	require.NoError(t, err)
	assert.Empty(t, contract.TenantID)

	d, err := s.Reminders(ctx, 0)
	require.NoError(t, err)
	require.NotEmpty(t, d)
	assert.Equal(t, finance.UnknownTenant, d[0].TenantName)
}

func TestLateFeeQuote(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	f := seedFixture(t, s)

	q, err := s.LateFee(ctx, f.overdue.ID)
	require.NoError(t, err)
	assert.True(t, q.ContractFound)
	assert.Equal(t, 12, q.DaysLate)
	assert.InDelta(t, 100, q.Fee, 0.001)
	assert.Zero(t, q.StoredFee)

	q, err = s.LateFee(ctx, f.paid.ID)
	require.NoError(t, err)
	assert.Zero(t, q.Fee)

	_, err = s.LateFee(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestApplyLateFees(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	f := seedFixture(t, s)

	changes, err := s.ApplyLateFees(ctx, true)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, f.overdue.ID, changes[0].PaymentID)
	assert.InDelta(t, 100, changes[0].Fee, 0.001)

	p, err := s.GetPayment(ctx, f.overdue.ID)
	require.NoError(t, err)
	assert.Zero(t, p.LateFee, "dry run writes nothing")

	changes, err = s.ApplyLateFees(ctx, false)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	p, err = s.GetPayment(ctx, f.overdue.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100, p.LateFee, 0.001)

	changes, err = s.ApplyLateFees(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, changes, "second run has nothing left to change")
}

func TestRestoreRecreatesDeletedEntity(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	f := seedFixture(t, s)

	deleted, err := s.DeleteExpense(ctx, f.expense.ID)
	require.NoError(t, err)
	require.NoError(t, s.RestoreExpense(ctx, deleted))

	got, err := s.GetExpense(ctx, f.expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "roof repair", got.Description)
	assert.Equal(t, f.expense.PropertyID, got.PropertyID)
}
