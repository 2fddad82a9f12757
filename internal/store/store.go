// Package store is the persistence gateway: list, add, full-replace update
// and delete for every entity of the portfolio.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for packages that keep their own tables.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// WithTx runs fn against a Store bound to a single transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func list[T any](ctx context.Context, db *gorm.DB, what string, preload ...string) ([]T, error) {
	q := db.WithContext(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	return out, nil
}

func get[T any](ctx context.Context, db *gorm.DB, what, id string, preload ...string) (*T, error) {
	q := db.WithContext(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	var out T
	if err := q.First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
		}
		return nil, fmt.Errorf("get %s %s: %w", what, id, err)
	}
	return &out, nil
}

func create(ctx context.Context, db *gorm.DB, what string, value any) error {
	if err := db.WithContext(ctx).Create(value).Error; err != nil {
		return fmt.Errorf("add %s: %w", what, err)
	}
	return nil
}

// replace writes every column of value, zero values included. A row that
// does not exist yet is inserted.
func replace(ctx context.Context, db *gorm.DB, what string, value any) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(value).Error; err != nil {
		return fmt.Errorf("update %s: %w", what, err)
	}
	return nil
}

func remove[T any](ctx context.Context, db *gorm.DB, what, id string) error {
	res := db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete %s %s: %w", what, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
