package tenant

import (
	"propman-backend/internal/audit"
	"propman-backend/internal/finance"
	"propman-backend/internal/models"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TenantResponse struct {
	models.Tenant
	PropertyName string `json:"property_name"`
}

// GET /api/tenants?q=...
func ListTenantsHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn, err := svc.Snapshot(c.UserContext())
		if err != nil {
			return err
		}
		dir := sn.Directory()

		tenants := finance.FilterTenants(sn.Tenants, c.Query("q"))
		resp := make([]TenantResponse, 0, len(tenants))
		for _, t := range tenants {
			name := ""
			if t.PropertyID != "" {
				name = dir.PropertyName(t.PropertyID)
			}
			resp = append(resp, TenantResponse{Tenant: t, PropertyName: name})
		}
		return c.JSON(resp)
	}
}

func GetTenantHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := svc.GetTenant(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(t)
	}
}

func CreateTenantHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.TenantRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		t := body.Model()
		if err := svc.AddTenant(c.UserContext(), t); err != nil {
			return err
		}

		al.Record(c, audit.EntityTenant, t.ID, models.AuditActionCreate, "tenant added: "+t.Name, nil, t)
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

func UpdateTenantHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.TenantRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		t := body.Model()
		t.ID = c.Params("id")
		before, err := svc.UpdateTenant(c.UserContext(), t)
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityTenant, t.ID, models.AuditActionUpdate, "tenant updated: "+t.Name, before, t)
		return c.JSON(t)
	}
}

// DELETE /api/tenants/:id also clears the tenant from contracts and units.
func DeleteTenantHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deleted, err := svc.DeleteTenant(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityTenant, deleted.ID, models.AuditActionDelete, "tenant deleted: "+deleted.Name, deleted, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
