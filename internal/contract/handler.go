package contract

import (
	"fmt"

	"propman-backend/internal/audit"
	"propman-backend/internal/finance"
	"propman-backend/internal/models"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/upload"
	"propman-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ContractResponse struct {
	models.Contract
	PropertyName string `json:"property_name"`
	TenantName   string `json:"tenant_name"`
}

func describe(c *models.Contract) string {
	return fmt.Sprintf("contract %s (property %s, tenant %s)", c.ID, c.PropertyID, c.TenantID)
}

// GET /api/contracts?q=...&status=active
func ListContractsHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn, err := svc.Snapshot(c.UserContext())
		if err != nil {
			return err
		}
		dir := sn.Directory()

		contracts := finance.FilterContracts(sn.Contracts, dir, finance.ContractFilter{
			Query:  c.Query("q"),
			Status: c.Query("status"),
		})
		resp := make([]ContractResponse, 0, len(contracts))
		for _, ct := range contracts {
			resp = append(resp, ContractResponse{
				Contract:     ct,
				PropertyName: dir.PropertyName(ct.PropertyID),
				TenantName:   dir.TenantName(ct.TenantID),
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/contracts/by-property?q=...&status=...
func ContractsByPropertyHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sn, err := svc.Snapshot(c.UserContext())
		if err != nil {
			return err
		}
		dir := sn.Directory()

		contracts := finance.FilterContracts(sn.Contracts, dir, finance.ContractFilter{
			Query:  c.Query("q"),
			Status: c.Query("status"),
		})
		return c.JSON(finance.GroupContractsByProperty(contracts, dir))
	}
}

func GetContractHandler(svc *portfolio.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ct, err := svc.GetContract(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(ct)
	}
}

func CreateContractHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.ContractRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		ct := body.Model()
		if err := svc.AddContract(c.UserContext(), ct); err != nil {
			return err
		}

		al.Record(c, audit.EntityContract, ct.ID, models.AuditActionCreate, describe(ct)+" added", nil, ct)
		return c.Status(fiber.StatusCreated).JSON(ct)
	}
}

func UpdateContractHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body validation.ContractRequest
		if err := validation.Bind(c, &body); err != nil {
			return err
		}

		ct := body.Model()
		ct.ID = c.Params("id")
		before, err := svc.UpdateContract(c.UserContext(), ct)
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityContract, ct.ID, models.AuditActionUpdate, describe(ct)+" updated", before, ct)
		return c.JSON(ct)
	}
}

// DELETE /api/contracts/:id frees the unit or property and removes the
// contract's payments.
func DeleteContractHandler(svc *portfolio.Service, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deleted, err := svc.DeleteContract(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}

		al.Record(c, audit.EntityContract, deleted.ID, models.AuditActionDelete, describe(deleted)+" deleted", deleted, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/contracts/:id/file (multipart field "file")
func UploadContractFileHandler(svc *portfolio.Service, files *upload.Store, al *audit.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		before, err := svc.GetContract(c.UserContext(), id)
		if err != nil {
			return err
		}

		name, err := upload.FromForm(c, files, "file")
		if err != nil {
			return err
		}
		ct, err := svc.AttachContractFile(c.UserContext(), id, upload.URL(name))
		if err != nil {
			_ = files.Remove(name)
			return err
		}
		if before.ContractFile != ct.ContractFile {
			upload.Discard(files, before.ContractFile)
		}

		al.Record(c, audit.EntityContract, ct.ID, models.AuditActionUpdate, describe(ct)+" file attached", before, ct)
		return c.JSON(ct)
	}
}
