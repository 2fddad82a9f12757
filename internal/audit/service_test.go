package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"propman-backend/internal/models"
	"propman-backend/internal/portfolio"
	"propman-backend/internal/store"
	"propman-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newServices(t *testing.T) (*Service, *portfolio.Service) {
	db := testutil.OpenDB(t)
	p := portfolio.New(store.New(db), nil)
	return New(db, p), p
}

func lastLog(t *testing.T, s *Service) models.AuditLog {
	t.Helper()
	logs, err := s.List(context.Background(), ListFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	return logs[0]
}

func newExpense() *models.Expense {
	return &models.Expense{
		PropertyID:  "p1",
		Amount:      120,
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Category:    models.CategoryUtilities,
		Description: "light bill",
	}
}

func TestUndoCreateDeletes(t *testing.T) {
	ctx := context.Background()
	s, p := newServices(t)

	e := newExpense()
	require.NoError(t, p.AddExpense(ctx, e))
	require.NoError(t, s.WriteLog(ctx, LogOptions{
		UserID: "u1", EntityType: EntityExpense, EntityID: e.ID,
		Action: models.AuditActionCreate, Description: "expense created", After: e,
	}))

	log := lastLog(t, s)
	undo, err := s.Undo(ctx, log.ID, "u2", "Bia")
	require.NoError(t, err)
	assert.Equal(t, models.AuditActionUndo, undo.Action)
	assert.True(t, undo.Undone)

	_, err = p.GetExpense(ctx, e.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Undo(ctx, log.ID, "u2", "Bia")
	assert.ErrorIs(t, err, ErrAlreadyUndone)
}

func TestUndoUpdateRestoresBeforeImage(t *testing.T) {
	ctx := context.Background()
	s, p := newServices(t)

	e := newExpense()
	require.NoError(t, p.AddExpense(ctx, e))

	changed := *e
	changed.Amount = 999
	changed.Description = "typo"
	before, err := p.UpdateExpense(ctx, &changed)
	require.NoError(t, err)
	require.NoError(t, s.WriteLog(ctx, LogOptions{
		EntityType: EntityExpense, EntityID: e.ID,
		Action: models.AuditActionUpdate, Before: before, After: &changed,
	}))

	_, err = s.Undo(ctx, lastLog(t, s).ID, "u1", "Ana")
	require.NoError(t, err)

	got, err := p.GetExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.InDelta(t, 120, got.Amount, 0.001)
	assert.Equal(t, "light bill", got.Description)
}

func TestUndoDeleteReinserts(t *testing.T) {
	ctx := context.Background()
	s, p := newServices(t)

	prop := &models.Property{
		Name: "Galpão", Type: models.PropertyTypeBuilding, Status: models.StatusVacant,
		Units: []models.PropertyUnit{{UnitNumber: "1"}, {UnitNumber: "2"}},
	}
	require.NoError(t, p.AddProperty(ctx, prop))

	deleted, err := p.DeleteProperty(ctx, prop.ID)
	require.NoError(t, err)
	require.NoError(t, s.WriteLog(ctx, LogOptions{
		EntityType: EntityProperty, EntityID: prop.ID,
		Action: models.AuditActionDelete, Before: deleted,
	}))

	_, err = s.Undo(ctx, lastLog(t, s).ID, "u1", "Ana")
	require.NoError(t, err)

	got, err := p.GetProperty(ctx, prop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Galpão", got.Name)
	assert.Len(t, got.Units, 2)
}

func TestUndoKeepsLogOpenWhenUndoLogFails(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	p := portfolio.New(store.New(db), nil)
	s := New(db, p)

	e := newExpense()
	require.NoError(t, p.AddExpense(ctx, e))
	changed := *e
	changed.Amount = 999
	before, err := p.UpdateExpense(ctx, &changed)
	require.NoError(t, err)
	require.NoError(t, s.WriteLog(ctx, LogOptions{
		EntityType: EntityExpense, EntityID: e.ID,
		Action: models.AuditActionUpdate, Before: before, After: &changed,
	}))
	logID := lastLog(t, s).ID

	const hook = "test:fail_audit_insert"
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(hook, func(tx *gorm.DB) {
		if tx.Statement.Table == "audit_logs" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))
	_, err = s.Undo(ctx, logID, "u1", "Ana")
	require.Error(t, err)
	require.NoError(t, db.Callback().Create().Remove(hook))

	var log models.AuditLog
	require.NoError(t, db.First(&log, logID).Error)
	assert.False(t, log.IsUndone, "mark is rolled back with the undo log")
	assert.Nil(t, log.UndoneBy)

	undo, err := s.Undo(ctx, logID, "u1", "Ana")
	require.NoError(t, err)
	assert.Equal(t, models.AuditActionUndo, undo.Action)
}

func TestUndoMissingAndUndoLogs(t *testing.T) {
	ctx := context.Background()
	s, _ := newServices(t)

	_, err := s.Undo(ctx, 42, "u1", "Ana")
	assert.ErrorIs(t, err, ErrLogNotFound)

	require.NoError(t, s.WriteLog(ctx, LogOptions{EntityType: EntityPayment, EntityID: "x", Action: models.AuditActionUndo}))
	_, err = s.Undo(ctx, lastLog(t, s).ID, "u1", "Ana")
	assert.ErrorIs(t, err, ErrNotUndoable)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	s, _ := newServices(t)

	for _, typ := range []string{EntityTenant, EntityTenant, EntityContract} {
		require.NoError(t, s.WriteLog(ctx, LogOptions{UserID: "u1", EntityType: typ, EntityID: "id", Action: models.AuditActionCreate}))
	}

	logs, err := s.List(ctx, ListFilter{EntityType: EntityTenant})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = s.List(ctx, ListFilter{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, logs)
}
