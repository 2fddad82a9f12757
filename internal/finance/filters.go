package finance

import (
	"sort"
	"strings"

	"propman-backend/internal/models"
)

func matches(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// exact reports whether an exact-match filter lets v through. Empty and
// "all" disable the filter.
func exact(filter, v string) bool {
	return filter == "" || filter == "all" || filter == v
}

func FilterProperties(properties []models.Property, query string) []models.Property {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if matches(q, p.Name, p.Address, string(p.Type), string(p.Status)) {
			out = append(out, p)
		}
	}
	return out
}

func FilterTenants(tenants []models.Tenant, query string) []models.Tenant {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if matches(q, t.Name, t.Email, t.Phone, t.CPF) {
			out = append(out, t)
		}
	}
	return out
}

type ContractFilter struct {
	Query  string
	Status string
}

func FilterContracts(contracts []models.Contract, d *Directory, f ContractFilter) []models.Contract {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Contract, 0, len(contracts))
	for _, c := range contracts {
		if !exact(f.Status, string(c.Status)) {
			continue
		}
		if matches(q, d.PropertyName(c.PropertyID), d.TenantName(c.TenantID), c.ID) {
			out = append(out, c)
		}
	}
	return out
}

type ContractGroup struct {
	PropertyID   string            `json:"property_id"`
	PropertyName string            `json:"property_name"`
	Contracts    []models.Contract `json:"contracts"`
}

// GroupContractsByProperty groups by property name, groups ordered by name.
// Contracts whose property is gone share the placeholder group.
func GroupContractsByProperty(contracts []models.Contract, d *Directory) []ContractGroup {
	byName := make(map[string]*ContractGroup)
	var names []string
	for _, c := range contracts {
		name := d.PropertyName(c.PropertyID)
		g, ok := byName[name]
		if !ok {
			g = &ContractGroup{PropertyName: name}
			if name != UnknownProperty {
				g.PropertyID = c.PropertyID
			}
			byName[name] = g
			names = append(names, name)
		}
		g.Contracts = append(g.Contracts, c)
	}
	sort.Strings(names)

	out := make([]ContractGroup, 0, len(names))
	for _, n := range names {
		out = append(out, *byName[n])
	}
	return out
}

type PaymentFilter struct {
	Query  string
	Status string
}

// FilterPayments searches by property and tenant name and returns the
// matches by due date, latest first.
func FilterPayments(payments []models.Payment, d *Directory, f PaymentFilter) []models.Payment {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if !exact(f.Status, string(p.Status)) {
			continue
		}
		property, tenant := d.PaymentParties(p)
		if matches(q, property, tenant) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.After(out[j].DueDate)
	})
	return out
}

type ExpenseFilter struct {
	Query      string
	Category   string
	PropertyID string
}

// FilterExpenses returns the matches newest first.
func FilterExpenses(expenses []models.Expense, d *Directory, f ExpenseFilter) []models.Expense {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !exact(f.Category, string(e.Category)) || !exact(f.PropertyID, e.PropertyID) {
			continue
		}
		if matches(q, e.Description, d.PropertyName(e.PropertyID)) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SumExpenses totals the amount of a (filtered) expense list.
func SumExpenses(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

type PropertySummary struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Address    string                 `json:"address"`
	Type       models.PropertyType    `json:"type"`
	Status     models.OccupancyStatus `json:"status"`
	TenantName string                 `json:"tenant_name"`
}

// PropertySummaries builds the short dashboard property list. limit <= 0
// keeps every property.
func PropertySummaries(properties []models.Property, d *Directory, limit int) []PropertySummary {
	n := len(properties)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]PropertySummary, 0, n)
	for _, p := range properties[:n] {
		out = append(out, PropertySummary{
			ID:         p.ID,
			Name:       p.Name,
			Address:    p.Address,
			Type:       p.Type,
			Status:     p.Status,
			TenantName: d.TenantOfProperty(p.ID),
		})
	}
	return out
}
