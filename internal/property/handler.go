package property

import (
	"fmt"

	"propman-backend/internal/audit"
	"propman-backend/internal/finance"
	"propman-backend/internal/models"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GET /api/properties?q=...
func ListPropertiesHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		properties, err := svc.ListProperties(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(finance.FilterProperties(properties, c.Query("q")))
	}
}

// GET /api/properties/:id
func GetPropertyHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.GetProperty(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

// POST /api/properties
func CreatePropertyHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.PropertyRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		p := body.Model()
		if err := svc.AddProperty(c.UserContext(), p); err != nil {
			return err
		}

		al.Record(c, audit.EntityProperty, p.ID, models.AuditActionCreate,
			fmt.Sprintf("property added: %s", p.Name), nil, p)
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/properties/:id replaces the property, units included.
func UpdatePropertyHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.PropertyRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		p := body.Model()
		p.ID = c.Params("id")
		before, err := svc.UpdateProperty(c.UserContext(), p)
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityProperty, p.ID, models.AuditActionUpdate,
			fmt.Sprintf("property updated: %s", p.Name), before, p)
		return c.JSON(p)
	}
}

// DELETE /api/properties/:id
func DeletePropertyHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deleted, err := svc.DeleteProperty(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityProperty, deleted.ID, models.AuditActionDelete,
			fmt.Sprintf("property deleted: %s", deleted.Name), deleted, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
