package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"himti/internal/pagination"
)

// Lifecycle is the archival state machine shared by every soft-deletable entity:
// active -> soft-deleted -> active again on restore, or any state -> gone on hard delete.
// Missing rows surface as gorm.ErrRecordNotFound.
type Lifecycle[T any] interface {
	ListActive(ctx context.Context, q pagination.Query) (*pagination.Page[T], error)
	ListDeleted(ctx context.Context, q pagination.Query) (*pagination.Page[T], error)
	FindActive(ctx context.Context, id uuid.UUID) (*T, error)
	FindDeleted(ctx context.Context, id uuid.UUID) (*T, error)
	FindAny(ctx context.Context, id uuid.UUID) (*T, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// Scope decorates a row query with ordering, preloads or computed columns.
type Scope func(*gorm.DB) *gorm.DB

type lifecycle[T any] struct {
	db    *gorm.DB
	order string
	scope Scope
}

// NewLifecycle builds the lifecycle for model T. order is applied to listings; scope, when
// non-nil, is applied to every row-returning query.
func NewLifecycle[T any](db *gorm.DB, order string, scope Scope) Lifecycle[T] {
	return &lifecycle[T]{db: db, order: order, scope: scope}
}

func (l *lifecycle[T]) decorate(tx *gorm.DB) *gorm.DB {
	if l.order != "" {
		tx = tx.Order(l.order)
	}
	if l.scope != nil {
		tx = l.scope(tx)
	}
	return tx
}

func (l *lifecycle[T]) ListActive(ctx context.Context, q pagination.Query) (*pagination.Page[T], error) {
	base := l.db.WithContext(ctx).Model(new(T))
	return pagination.Window[T](ctx, base, q, l.decorate)
}

func (l *lifecycle[T]) ListDeleted(ctx context.Context, q pagination.Query) (*pagination.Page[T], error) {
	base := l.db.WithContext(ctx).Unscoped().Model(new(T)).Where("deleted_at IS NOT NULL")
	return pagination.Window[T](ctx, base, q, l.decorate)
}

func (l *lifecycle[T]) FindActive(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	tx := l.db.WithContext(ctx)
	if l.scope != nil {
		tx = l.scope(tx)
	}
	if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (l *lifecycle[T]) FindDeleted(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	if err := l.db.WithContext(ctx).Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", id).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindAny loads the row whatever its deletion state.
func (l *lifecycle[T]) FindAny(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	if err := l.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// SoftDelete stamps deleted_at on an active row.
func (l *lifecycle[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := l.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("soft delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Restore clears deleted_at on a soft-deleted row.
func (l *lifecycle[T]) Restore(ctx context.Context, id uuid.UUID) error {
	res := l.db.WithContext(ctx).Unscoped().Model(new(T)).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return fmt.Errorf("restore: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HardDelete removes the row whatever its state.
func (l *lifecycle[T]) HardDelete(ctx context.Context, id uuid.UUID) error {
	res := l.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("hard delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// updated maps a column update that matched no active row to gorm.ErrRecordNotFound.
func updated(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
