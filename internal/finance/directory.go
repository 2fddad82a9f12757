package finance

import (
	"time"

	"propman-backend/internal/models"
)

// Placeholders shown when a reference points nowhere. A dangling reference
// is not an error.
const (
	UnknownProperty = "unknown property"
	UnknownTenant   = "unknown tenant"
	NoTenant        = "no tenant"
)

// Directory resolves ids to entities across collections.
type Directory struct {
	properties map[string]*models.Property
	tenants    map[string]*models.Tenant
	contracts  map[string]*models.Contract
	// first tenant seen per property
	tenantByProperty map[string]*models.Tenant
}

func NewDirectory(properties []models.Property, tenants []models.Tenant, contracts []models.Contract) *Directory {
	d := &Directory{
		properties:       make(map[string]*models.Property, len(properties)),
		tenants:          make(map[string]*models.Tenant, len(tenants)),
		contracts:        make(map[string]*models.Contract, len(contracts)),
		tenantByProperty: make(map[string]*models.Tenant, len(tenants)),
	}
	for i := range properties {
		d.properties[properties[i].ID] = &properties[i]
	}
	for i := range tenants {
		t := &tenants[i]
		d.tenants[t.ID] = t
		if t.PropertyID == "" {
			continue
		}
		if _, seen := d.tenantByProperty[t.PropertyID]; !seen {
			d.tenantByProperty[t.PropertyID] = t
		}
	}
	for i := range contracts {
		d.contracts[contracts[i].ID] = &contracts[i]
	}
	return d
}

func (d *Directory) Contract(id string) (*models.Contract, bool) {
	c, ok := d.contracts[id]
	return c, ok
}

func (d *Directory) PropertyName(id string) string {
	if p, ok := d.properties[id]; ok {
		return p.Name
	}
	return UnknownProperty
}

func (d *Directory) TenantName(id string) string {
	if t, ok := d.tenants[id]; ok {
		return t.Name
	}
	return UnknownTenant
}

// TenantOfProperty names the tenant living in a property.
func (d *Directory) TenantOfProperty(propertyID string) string {
	if t, ok := d.tenantByProperty[propertyID]; ok {
		return t.Name
	}
	return NoTenant
}

// PaymentParties resolves the property and tenant behind a payment through
// its contract.
func (d *Directory) PaymentParties(p models.Payment) (property, tenant string) {
	c, ok := d.contracts[p.ContractID]
	if !ok {
		return UnknownProperty, UnknownTenant
	}
	return d.PropertyName(c.PropertyID), d.TenantName(c.TenantID)
}

// LateFee computes the fee owed by p under its contract.
func (d *Directory) LateFee(p models.Payment, now time.Time) float64 {
	c, _ := d.Contract(p.ContractID)
	return CalculateLateFee(p, c, now)
}
