package export

import (
	"fmt"

	"propman-backend/internal/finance"
	"propman-backend/internal/portfolio"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func send(c *fiber.Ctx, f *excelize.File, name string) error {
	defer f.Close()
	c.Set(fiber.HeaderContentType, ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return f.Write(c)
}

// GET /api/exports/payments.xlsx
func PaymentsHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn, err := svc.Snapshot(c.UserContext())
		if err != nil {
			return err
		}
		f, err := Payments(sn.Payments, sn.Directory())
		if err != nil {
			return err
		}
		return send(c, f, fmt.Sprintf("payments_%s.xlsx", svc.Now().Format("20060102_150405")))
	}
}

// GET /api/exports/financials.xlsx?period=12months
func FinancialsHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		months, ok := finance.PeriodMonths(c.Query("period"))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "period must be 3months, 6months or 12months")
		}
		rows, err := svc.Financials(c.UserContext(), months)
		if err != nil {
			return err
		}
		f, err := Financials(rows)
		if err != nil {
			return err
		}
		return send(c, f, fmt.Sprintf("financials_%s.xlsx", svc.Now().Format("20060102_150405")))
	}
}
