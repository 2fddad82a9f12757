// Package portfolio is the application state of the dashboard: it owns
// every mutation of the five collections, applies the cascade rules on
// delete and derives the dashboard views from the stored data.
package portfolio

import (
	"context"
	"time"

	"propman-backend/internal/cache"
	"propman-backend/internal/finance"
	"propman-backend/internal/models"
	"propman-backend/internal/store"
)

const dashboardKey = "propman:dashboard"

type Service struct {
	store    *store.Store
	cache    *cache.Cache
	cacheTTL time.Duration
	locale   string
	now      func() time.Time
}

type Option func(*Service)

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.cacheTTL = ttl }
}

func WithLocale(locale string) Option {
	return func(s *Service) { s.locale = locale }
}

// WithClock replaces time.Now, for tests and batch runs pinned to a date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st *store.Store, c *cache.Cache, opts ...Option) *Service {
	s := &Service{
		store:    st,
		cache:    c,
		cacheTTL: 5 * time.Minute,
		locale:   finance.DefaultLocale,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Now() time.Time {
	return s.now()
}

// changed drops every derived view computed before a write.
func (s *Service) changed(ctx context.Context) {
	s.cache.Invalidate(ctx, dashboardKey)
}

// Snapshot is a full read of the portfolio.
type Snapshot struct {
	Properties []models.Property
	Tenants    []models.Tenant
	Contracts  []models.Contract
	Payments   []models.Payment
	Expenses   []models.Expense
}

func (sn *Snapshot) Directory() *finance.Directory {
	return finance.NewDirectory(sn.Properties, sn.Tenants, sn.Contracts)
}

func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		sn  Snapshot
		err error
	)
	if sn.Properties, err = s.store.ListProperties(ctx); err != nil {
		return nil, err
	}
	if sn.Tenants, err = s.store.ListTenants(ctx); err != nil {
		return nil, err
	}
	if sn.Contracts, err = s.store.ListContracts(ctx); err != nil {
		return nil, err
	}
	if sn.Payments, err = s.store.ListPayments(ctx); err != nil {
		return nil, err
	}
	if sn.Expenses, err = s.store.ListExpenses(ctx); err != nil {
		return nil, err
	}
	return &sn, nil
}

// Reminder is a payment enriched with who owes it and what it owes now.
type Reminder struct {
	models.Payment
	PropertyName string  `json:"property_name"`
	TenantName   string  `json:"tenant_name"`
	AccruedFee   float64 `json:"accrued_late_fee"`
}

type Dashboard struct {
	Stats       finance.Stats               `json:"stats"`
	Financials  []finance.MonthlyFinancials `json:"monthly_financials"`
	Reminders   []Reminder                  `json:"payment_reminders"`
	Properties  []finance.PropertySummary   `json:"properties"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// DashboardPropertyLimit bounds the dashboard property list.
const DashboardPropertyLimit = 5

// Dashboard serves the cached aggregate when there is one.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var cached Dashboard
	if s.cache.GetJSON(ctx, dashboardKey, &cached) {
		return &cached, nil
	}

	sn, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	dir := sn.Directory()

	d := &Dashboard{
		Stats:       finance.ComputeStats(sn.Properties, sn.Tenants, sn.Payments, sn.Expenses),
		Financials:  finance.Monthly(now, sn.Payments, sn.Expenses, finance.DefaultMonths, s.locale),
		Reminders:   reminders(sn.Payments, dir, now, finance.DefaultReminders),
		Properties:  finance.PropertySummaries(sn.Properties, dir, DashboardPropertyLimit),
		GeneratedAt: now,
	}
	s.cache.SetJSON(ctx, dashboardKey, d, s.cacheTTL)
	return d, nil
}

func (s *Service) Stats(ctx context.Context) (finance.Stats, error) {
	sn, err := s.Snapshot(ctx)
	if err != nil {
		return finance.Stats{}, err
	}
	return finance.ComputeStats(sn.Properties, sn.Tenants, sn.Payments, sn.Expenses), nil
}

// Financials returns the trailing cash-flow series of the given length.
func (s *Service) Financials(ctx context.Context, months int) ([]finance.MonthlyFinancials, error) {
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return finance.Monthly(s.now(), payments, expenses, months, s.locale), nil
}

func (s *Service) Reminders(ctx context.Context, limit int) ([]Reminder, error) {
	sn, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return reminders(sn.Payments, sn.Directory(), s.now(), limit), nil
}

func (s *Service) PropertySummaries(ctx context.Context, limit int) ([]finance.PropertySummary, error) {
	sn, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return finance.PropertySummaries(sn.Properties, sn.Directory(), limit), nil
}

func reminders(payments []models.Payment, dir *finance.Directory, now time.Time, limit int) []Reminder {
	top := finance.PaymentReminders(payments, limit)
	out := make([]Reminder, 0, len(top))
	for _, p := range top {
		property, tenant := dir.PaymentParties(p)
		out = append(out, Reminder{
			Payment:      p,
			PropertyName: property,
			TenantName:   tenant,
			AccruedFee:   dir.LateFee(p, now),
		})
	}
	return out
}
