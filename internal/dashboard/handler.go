package dashboard

import (
	"propman-backend/internal/finance"
	"propman-backend/internal/portfolio"

	"github.com/gofiber/fiber/v2"
)

type FinancialTotals struct {
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	NetIncome float64 `json:"net_income"`
}

type FinancialsResponse struct {
	Period      string                      `json:"period"` // 3months | 6months | 12months
	Points      []finance.MonthlyFinancials `json:"points"`
	GrandTotals FinancialTotals             `json:"grand_totals"`
}

// GET /api/dashboard
func DashboardHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.Dashboard(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(d)
	}
}

// GET /api/dashboard/stats
func StatsHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(st)
	}
}

// GET /api/dashboard/financials?period=6months
func FinancialsHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "6months")
		months, ok := finance.PeriodMonths(period)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "period must be 3months, 6months or 12months")
		}

		points, err := svc.Financials(c.UserContext(), months)
		if err != nil {
			return err
		}

		resp := FinancialsResponse{Period: period, Points: points}
		for _, p := range points {
			resp.GrandTotals.Income += p.Income
			resp.GrandTotals.Expenses += p.Expenses
		}
		resp.GrandTotals.NetIncome = resp.GrandTotals.Income - resp.GrandTotals.Expenses
		return c.JSON(resp)
	}
}

// GET /api/dashboard/reminders?limit=5
func RemindersHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", finance.DefaultReminders)
		reminders, err := svc.Reminders(c.UserContext(), limit)
		if err != nil {
			return err
		}
		return c.JSON(reminders)
	}
}

// GET /api/dashboard/properties?limit=5
func PropertiesHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", portfolio.DashboardPropertyLimit)
		summaries, err := svc.PropertySummaries(c.UserContext(), limit)
		if err != nil {
			return err
		}
		return c.JSON(summaries)
	}
}
