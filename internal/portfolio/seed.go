package portfolio

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"propman-backend/internal/models"
)

// ErrNotEmpty is returned by Seed when the portfolio already holds data.
var ErrNotEmpty = errors.New("portfolio is not empty")

type SeedResult struct {
	Properties int `json:"properties"`
	Tenants    int `json:"tenants"`
	Contracts  int `json:"contracts"`
	Payments   int `json:"payments"`
	Expenses   int `json:"expenses"`
}

func intPtr(v int) *int { return &v }

// Seed fills an empty portfolio with a small sample: three properties, two
// leases with five months of payments around the current date and a few
// expenses.
func (s *Service) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrNotEmpty
	}

	now := s.now()
	month := func(offset, day int) time.Time {
		return time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
	}
	res := &SeedResult{}

	house := models.Property{
		Name: "Casa Jardim Europa", Address: "Rua das Palmeiras, 120", Type: models.PropertyTypeHouse,
		Bedrooms: intPtr(3), Bathrooms: intPtr(2), Area: 180, Status: models.StatusOccupied,
		Description: "Casa térrea com quintal",
	}
	apartment := models.Property{
		Name: "Apto Centro 42", Address: "Av. Paulista, 1500, ap 42", Type: models.PropertyTypeApartment,
		Bedrooms: intPtr(2), Bathrooms: intPtr(1), Area: 68, Status: models.StatusVacant,
	}
	building := models.Property{
		Name: "Edifício Horizonte", Address: "Rua XV de Novembro, 80", Type: models.PropertyTypeBuilding,
		Area: 640, Status: models.StatusOccupied,
		Units: []models.PropertyUnit{
			{UnitNumber: "101", Bedrooms: 1, Bathrooms: 1, Area: 45, MonthlyRent: 1400, Status: models.StatusOccupied},
			{UnitNumber: "102", Bedrooms: 2, Bathrooms: 1, Area: 60, MonthlyRent: 1800, Status: models.StatusVacant},
		},
	}
	for _, p := range []*models.Property{&house, &apartment, &building} {
		if err := s.AddProperty(ctx, p); err != nil {
			return nil, err
		}
		res.Properties++
	}

	ana := models.Tenant{Name: "Ana Beatriz Souza", Email: "ana.souza@example.com", Phone: "(11) 98888-1234",
		CPF: "123.456.789-09", Occupants: 3, PropertyID: house.ID}
	caio := models.Tenant{Name: "Caio Mendes", Email: "caio.mendes@example.com", Phone: "(11) 97777-4321",
		CPF: "987.654.321-00", Occupants: 1, PropertyID: building.ID, UnitID: building.Units[0].ID}
	for _, t := range []*models.Tenant{&ana, &caio} {
		if err := s.AddTenant(ctx, t); err != nil {
			return nil, err
		}
		res.Tenants++
	}

	leases := []struct {
		tenant *models.Tenant
		lease  models.Contract
	}{
		{&ana, models.Contract{PropertyID: house.ID, TenantID: ana.ID, MonthlyRent: 3200, DepositAmount: 6400}},
		{&caio, models.Contract{PropertyID: building.ID, UnitID: building.Units[0].ID, TenantID: caio.ID, MonthlyRent: 1400, DepositAmount: 1400}},
	}
	for i := range leases {
		c := &leases[i].lease
		c.StartDate = month(-6, 1)
		c.EndDate = month(6, 1).AddDate(0, 0, -1)
		c.PaymentDueDay = 5
		c.LateFeeDays = 5
		c.LateFeePercentage = 10
		c.Status = models.ContractActive
		if err := s.AddContract(ctx, c); err != nil {
			return nil, err
		}
		res.Contracts++

		t := leases[i].tenant
		t.ContractID = c.ID
		if _, err := s.UpdateTenant(ctx, t); err != nil {
			return nil, err
		}

		for offset := -4; offset <= 0; offset++ {
			p := models.Payment{ContractID: c.ID, Amount: c.MonthlyRent, DueDate: month(offset, c.PaymentDueDay), Status: models.PaymentPaid}
			switch {
			case offset == 0:
				p.Status = models.PaymentPending
			case offset == -1 && i == 1:
				p.Status = models.PaymentOverdue
			default:
				p.Date = p.DueDate.AddDate(0, 0, -1)
				p.PaymentMethod = "pix"
			}
			if err := s.AddPayment(ctx, &p); err != nil {
				return nil, err
			}
			res.Payments++
		}
	}

	expenses := []models.Expense{
		{PropertyID: house.ID, Amount: 850, Date: month(-2, 12), Category: models.CategoryMaintenance, Description: "Conserto do telhado"},
		{PropertyID: building.ID, Amount: 420, Date: month(-1, 10), Category: models.CategoryUtilities, Description: "Conta de água áreas comuns", Recurring: true},
		{PropertyID: apartment.ID, Amount: 1250, Date: month(-3, 20), Category: models.CategoryTaxes, Description: "IPTU"},
		{PropertyID: building.ID, Amount: 390, Date: month(0, 2), Category: models.CategoryInsurance, Description: "Seguro predial"},
	}
	for i := range expenses {
		if err := s.AddExpense(ctx, &expenses[i]); err != nil {
			return nil, err
		}
		res.Expenses++
	}

	slog.Info("sample portfolio seeded",
		"properties", res.Properties,
		"tenants", res.Tenants,
		"contracts", res.Contracts,
		"payments", res.Payments,
		"expenses", res.Expenses,
	)
	return res, nil
}
