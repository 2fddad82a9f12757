// Package router assembles the HTTP API.
package router

import (
	"errors"
	"log/slog"

	"propman-backend/internal/audit"
	"propman-backend/internal/auth"
	"propman-backend/internal/config"
	"propman-backend/internal/contract"
	"propman-backend/internal/dashboard"
	"propman-backend/internal/expense"
	"propman-backend/internal/export"
	"propman-backend/internal/models"
	"propman-backend/internal/payment"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/property"
	"propman-backend/internal/store"
	"propman-backend/internal/tenant"
	"propman-backend/internal/upload"
	"propman-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// HomePath is where unknown pages are sent.
const HomePath = "/api/dashboard"

type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Portfolio *portfolio.Service
	Audit     *audit.Service
	Uploads   *upload.Store

	// AccessLog turns on the request logger middleware.
	AccessLog bool
}

// ErrorHandler renders every error as {"error": msg}. Validation failures
// also carry the offending fields.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": verrs,
		})
	}

	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	slog.Error("unexpected error",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "unexpected server error",
	})
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		// multipart overhead on top of the largest accepted file
		BodyLimit: int(d.Config.UploadMaxBytes) + 1<<20,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if d.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	svc, al := d.Portfolio, d.Audit
	requireAuth := auth.JWTMiddleware(d.Config.JWTSecret)
	ownerOnly := auth.RequireRole(models.RoleOwner)

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-owner", auth.RegisterOwnerHandler(d.DB))
	api.Post("/auth/login", auth.LoginHandler(d.DB, d.Config))
	api.Get("/auth/me", requireAuth, auth.MeHandler(d.DB))

	users := api.Group("/users", requireAuth, ownerOnly)
	users.Get("/", auth.ListUsersHandler(d.DB))
	users.Post("/", auth.CreateManagerHandler(d.DB))

	properties := api.Group("/properties", requireAuth)
	properties.Get("/", property.ListPropertiesHandler(svc))
	properties.Post("/", property.CreatePropertyHandler(svc, al))
	properties.Get("/:id", property.GetPropertyHandler(svc))
	properties.Put("/:id", property.UpdatePropertyHandler(svc, al))
	properties.Delete("/:id", property.DeletePropertyHandler(svc, al))

	tenants := api.Group("/tenants", requireAuth)
	tenants.Get("/", tenant.ListTenantsHandler(svc))
	tenants.Post("/", tenant.CreateTenantHandler(svc, al))
	tenants.Get("/:id", tenant.GetTenantHandler(svc))
	tenants.Put("/:id", tenant.UpdateTenantHandler(svc, al))
	tenants.Delete("/:id", tenant.DeleteTenantHandler(svc, al))

	contracts := api.Group("/contracts", requireAuth)
	contracts.Get("/", contract.ListContractsHandler(svc))
	contracts.Get("/by-property", contract.ContractsByPropertyHandler(svc))
	contracts.Post("/", contract.CreateContractHandler(svc, al))
	contracts.Get("/:id", contract.GetContractHandler(svc))
	contracts.Put("/:id", contract.UpdateContractHandler(svc, al))
	contracts.Delete("/:id", contract.DeleteContractHandler(svc, al))
	contracts.Post("/:id/file", contract.UploadContractFileHandler(svc, d.Uploads, al))

	payments := api.Group("/payments", requireAuth)
	payments.Get("/", payment.ListPaymentsHandler(svc))
	payments.Post("/", payment.CreatePaymentHandler(svc, al))
	payments.Post("/late-fees/apply", payment.ApplyLateFeesHandler(svc, al))
	payments.Get("/:id", payment.GetPaymentHandler(svc))
	payments.Get("/:id/late-fee", payment.LateFeeHandler(svc))
	payments.Put("/:id", payment.UpdatePaymentHandler(svc, al))
	payments.Delete("/:id", payment.DeletePaymentHandler(svc, al))

	expenses := api.Group("/expenses", requireAuth)
	expenses.Get("/", expense.ListExpensesHandler(svc))
	expenses.Get("/summary/monthly", expense.MonthlySummaryHandler(svc))
	expenses.Post("/", expense.CreateExpenseHandler(svc, al))
	expenses.Get("/:id", expense.GetExpenseHandler(svc))
	expenses.Put("/:id", expense.UpdateExpenseHandler(svc, al))
	expenses.Delete("/:id", expense.DeleteExpenseHandler(svc, al))
	expenses.Post("/:id/receipt", expense.UploadReceiptHandler(svc, d.Uploads, al))

	api.Get("/files/:name", requireAuth, upload.ServeFileHandler(d.Uploads))

	dash := api.Group("/dashboard", requireAuth)
	dash.Get("/", dashboard.DashboardHandler(svc))
	dash.Get("/stats", dashboard.StatsHandler(svc))
	dash.Get("/financials", dashboard.FinancialsHandler(svc))
	dash.Get("/reminders", dashboard.RemindersHandler(svc))
	dash.Get("/properties", dashboard.PropertiesHandler(svc))

	exports := api.Group("/exports", requireAuth)
	exports.Get("/payments.xlsx", export.PaymentsHandler(svc))
	exports.Get("/financials.xlsx", export.FinancialsHandler(svc))

	auditLogs := api.Group("/audit-logs", requireAuth)
	auditLogs.Get("/", audit.ListAuditLogsHandler(al))
	auditLogs.Post("/:id/undo", ownerOnly, audit.UndoAuditLogHandler(al))

	// Every other page goes to the dashboard.
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.Redirect(HomePath, fiber.StatusFound)
	})

	return app
}
