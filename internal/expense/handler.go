package expense

import (
	"fmt"
	"time"

	"propman-backend/internal/audit"
	"propman-backend/internal/finance"
	"propman-backend/internal/models"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/upload"
	"propman-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ExpenseResponse struct {
	models.Expense
	PropertyName string `json:"property_name"`
}

type ExpenseListResponse struct {
	Items       []ExpenseResponse `json:"items"`
	TotalAmount float64           `json:"total_amount"`
}

func describe(e *models.Expense) string {
	return fmt.Sprintf("%s expense of %.2f: %s", e.Category, e.Amount, e.Description)
}

// GET /api/expenses?q=...&category=taxes&property_id=...
func ListExpensesHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn, err := svc.Snapshot(c.UserContext())
		if err != nil {
			return err
		}
		dir := sn.Directory()

		expenses := finance.FilterExpenses(sn.Expenses, dir, finance.ExpenseFilter{
			Query:      c.Query("q"),
			Category:   c.Query("category"),
			PropertyID: c.Query("property_id"),
		})
		resp := ExpenseListResponse{
			Items:       make([]ExpenseResponse, 0, len(expenses)),
			TotalAmount: finance.SumExpenses(expenses),
		}
		for _, e := range expenses {
			resp.Items = append(resp.Items, ExpenseResponse{Expense: e, PropertyName: dir.PropertyName(e.PropertyID)})
		}
		return c.JSON(resp)
	}
}

// GET /api/expenses/summary/monthly?year=2026&month=10
// Defaults to the current month.
func MonthlySummaryHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := svc.Now()
		year := c.QueryInt("year", now.Year())
		month := c.QueryInt("month", int(now.Month()))
		if month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month must be between 1 and 12")
		}

		expenses, err := svc.ListExpenses(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(finance.SummarizeExpenses(expenses, year, time.Month(month)))
	}
}

func GetExpenseHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e, err := svc.GetExpense(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(e)
	}
}

func CreateExpenseHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.ExpenseRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		e := body.Model()
		if err := svc.AddExpense(c.UserContext(), e); err != nil {
			return err
		}

		al.Record(c, audit.EntityExpense, e.ID, models.AuditActionCreate, describe(e)+" added", nil, e)
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

func UpdateExpenseHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.ExpenseRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		e := body.Model()
		e.ID = c.Params("id")
		before, err := svc.UpdateExpense(c.UserContext(), e)
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityExpense, e.ID, models.AuditActionUpdate, describe(e)+" updated", before, e)
		return c.JSON(e)
	}
}

func DeleteExpenseHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deleted, err := svc.DeleteExpense(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityExpense, deleted.ID, models.AuditActionDelete, describe(deleted)+" deleted", deleted, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/expenses/:id/receipt (multipart field "file")
func UploadReceiptHandler(svc *portfolio.Service, files *upload.Store, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		before, err := svc.GetExpense(c.UserContext(), id)
		if err != nil {
			return err
		}

		name, err := upload.FromForm(c, files, "file")
		if err != nil {
			return err
		}
		e, err := svc.AttachReceipt(c.UserContext(), id, upload.URL(name))
		if err != nil {
			_ = files.Remove(name)
			return err
		}
		if before.Receipt != e.Receipt {
			upload.Discard(files, before.Receipt)
		}

		al.Record(c, audit.EntityExpense, e.ID, models.AuditActionUpdate, describe(e)+" receipt attached", before, e)
		return c.JSON(e)
	}
}
