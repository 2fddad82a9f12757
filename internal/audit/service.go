// Package audit records every change made through the API and can revert
// one change at a time.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"propman-backend/internal/auth"
	"propman-backend/internal/models"
	"propman-backend/internal/portfolio"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Entity types as stored in AuditLog.EntityType.
const (
	EntityProperty = "property"
	EntityTenant   = "tenant"
	EntityContract = "contract"
	EntityPayment  = "payment"
	EntityExpense  = "expense"
)

var (
	ErrLogNotFound   = errors.New("audit log not found")
	ErrAlreadyUndone = errors.New("change already undone")
	ErrNotUndoable   = errors.New("change cannot be undone")
)

type Service struct {
	db        *gorm.DB
	portfolio *portfolio.Service
}

func New(db *gorm.DB, p *portfolio.Service) *Service {
	return &Service{db: db, portfolio: p}
}

type LogOptions struct {
	UserID      string
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// jsonb rejects the empty string, absent images are stored as null.
func encode(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func (s *Service) WriteLog(ctx context.Context, opts LogOptions) error {
	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  encode(opts.Before),
		AfterData:   encode(opts.After),
	}
	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// Record writes a log for the user behind c. A failure is logged and
// swallowed; the change itself already happened.
func (s *Service) Record(c *fiber.Ctx, entityType, entityID string, action models.AuditAction, description string, before, after any) {
	userID, userName := auth.Actor(c)
	err := s.WriteLog(c.UserContext(), LogOptions{
		UserID:      userID,
		UserName:    userName,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	})
	if err != nil {
		slog.Warn("audit log not written",
			"entity_type", entityType,
			"entity_id", entityID,
			"action", action,
			"error", err,
		)
	}
}

type ListFilter struct {
	EntityType string
	EntityID   string
	UserID     string
	Limit      int
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// Undo reverts the change recorded by log logID: a create is deleted, an
// update is replaced by its before image and a delete is re-inserted from
// its before image. Cascades applied by the original delete stay applied.
func (s *Service) Undo(ctx context.Context, logID uint, userID, userName string) (*models.AuditLog, error) {
	var log models.AuditLog
	if err := s.db.WithContext(ctx).First(&log, "id = ?", logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("load audit log %d: %w", logID, err)
	}
	if log.IsUndone {
		return nil, ErrAlreadyUndone
	}

	var err error
	switch log.Action {
	case models.AuditActionCreate:
		err = s.deleteEntity(ctx, log.EntityType, log.EntityID)
	case models.AuditActionUpdate, models.AuditActionDelete:
		if log.BeforeData == "" || log.BeforeData == "null" {
			return nil, ErrNotUndoable
		}
		err = s.restoreEntity(ctx, log.EntityType, log.BeforeData)
	default:
		return nil, ErrNotUndoable
	}
	if err != nil {
		return nil, fmt.Errorf("undo %s of %s %s: %w", log.Action, log.EntityType, log.EntityID, err)
	}

	now := time.Now()
	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: "undone: " + log.Description,
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AuditLog{}).
			Where("id = ? AND is_undone = ?", log.ID, false).
			Updates(map[string]any{"is_undone": true, "undone_by": userID, "undone_at": now})
		if res.Error != nil {
			return fmt.Errorf("mark audit log %d undone: %w", logID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyUndone
		}
		if err := tx.Create(&undoLog).Error; err != nil {
			return fmt.Errorf("write undo log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &undoLog, nil
}

func (s *Service) deleteEntity(ctx context.Context, entityType, id string) error {
	var err error
	switch entityType {
	case EntityProperty:
		_, err = s.portfolio.DeleteProperty(ctx, id)
	case EntityTenant:
		_, err = s.portfolio.DeleteTenant(ctx, id)
	case EntityContract:
		_, err = s.portfolio.DeleteContract(ctx, id)
	case EntityPayment:
		_, err = s.portfolio.DeletePayment(ctx, id)
	case EntityExpense:
		_, err = s.portfolio.DeleteExpense(ctx, id)
	default:
		return fmt.Errorf("unknown entity type %q", entityType)
	}
	return err
}

func (s *Service) restoreEntity(ctx context.Context, entityType, data string) error {
	switch entityType {
	case EntityProperty:
		var v models.Property
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return err
		}
		return s.portfolio.RestoreProperty(ctx, &v)
	case EntityTenant:
		var v models.Tenant
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return err
		}
		return s.portfolio.RestoreTenant(ctx, &v)
	case EntityContract:
		var v models.Contract
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return err
		}
		return s.portfolio.RestoreContract(ctx, &v)
	case EntityPayment:
		var v models.Payment
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return err
		}
		return s.portfolio.RestorePayment(ctx, &v)
	case EntityExpense:
		var v models.Expense
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			return err
		}
		return s.portfolio.RestoreExpense(ctx, &v)
	}
	return fmt.Errorf("unknown entity type %q", entityType)
}
