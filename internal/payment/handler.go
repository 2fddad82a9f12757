package payment

import (
	"fmt"

	"propman-backend/internal/audit"
	"propman-backend/internal/finance"
	"propman-backend/internal/models"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type PaymentResponse struct {
	models.Payment
	PropertyName string  `json:"property_name"`
	TenantName   string  `json:"tenant_name"`
	AccruedFee   float64 `json:"accrued_late_fee"`
}

func describe(p *models.Payment) string {
	return fmt.Sprintf("payment of %.2f due %s", p.Amount, p.DueDate.Format("2006-01-02"))
}

// GET /api/payments?q=...&status=overdue
func ListPaymentsHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn, err := svc.Snapshot(c.UserContext())
		if err != nil {
			return err
		}
		dir := sn.Directory()
		now := svc.Now()

		payments := finance.FilterPayments(sn.Payments, dir, finance.PaymentFilter{
			Query:  c.Query("q"),
			Status: c.Query("status"),
		})
		resp := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			property, tenant := dir.PaymentParties(p)
			resp = append(resp, PaymentResponse{
				Payment:      p,
				PropertyName: property,
				TenantName:   tenant,
				AccruedFee:   dir.LateFee(p, now),
			})
		}
		return c.JSON(resp)
	}
}

func GetPaymentHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.GetPayment(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

func CreatePaymentHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.PaymentRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		p := body.Model()
		if err := svc.AddPayment(c.UserContext(), p); err != nil {
			return err
		}

		al.Record(c, audit.EntityPayment, p.ID, models.AuditActionCreate, describe(p)+" recorded", nil, p)
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

func UpdatePaymentHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.PaymentRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		p := body.Model()
		p.ID = c.Params("id")
		before, err := svc.UpdatePayment(c.UserContext(), p)
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityPayment, p.ID, models.AuditActionUpdate, describe(p)+" updated", before, p)
		return c.JSON(p)
	}
}

func DeletePaymentHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deleted, err := svc.DeletePayment(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityPayment, deleted.ID, models.AuditActionDelete, describe(deleted)+" deleted", deleted, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/payments/:id/late-fee
func LateFeeHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := svc.LateFee(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(q)
	}
}

// POST /api/payments/late-fees/apply?dry_run=true
func ApplyLateFeesHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dryRun := c.QueryBool("dry_run", false)
		changes, err := svc.ApplyLateFees(c.UserContext(), dryRun)
		if err != nil {
			return err
		}

		if !dryRun {
			for i := range changes {
				ch := &changes[i]
				al.Record(c, audit.EntityPayment, ch.PaymentID, models.AuditActionUpdate,
					fmt.Sprintf("late fee set from %.2f to %.2f", ch.Previous, ch.Fee), &ch.Before, &ch.After)
			}
		}
		if changes == nil {
			changes = []portfolio.LateFeeChange{}
		}
		return c.JSON(fiber.Map{
			"dry_run": dryRun,
			"changes": changes,
		})
	}
}
