package pagination

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query is the page/limit pair accepted by list endpoints.
type Query struct {
	Page  int `query:"page" json:"page"`
	Limit int `query:"limit" json:"limit"`
}

// Normalize applies defaults to non-positive values and clamps limit to MaxLimit.
func (q Query) Normalize() Query {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Offset is the number of rows skipped before the requested page.
func (q Query) Offset() int {
	n := q.Normalize()
	return (n.Page - 1) * n.Limit
}

type Meta struct {
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
}

// NewMeta computes page metadata for total rows under q.
func NewMeta(total int64, q Query) Meta {
	q = q.Normalize()
	return Meta{
		TotalItems:   total,
		ItemsPerPage: q.Limit,
		TotalPages:   int(math.Ceil(float64(total) / float64(q.Limit))),
		CurrentPage:  q.Page,
	}
}

type Page[T any] struct {
	Items []T
	Meta  Meta
}

// New builds a page from an already windowed slice.
func New[T any](items []T, total int64, q Query) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Meta: NewMeta(total, q)}
}

// Window counts the rows matched by base and loads the requested slice of them concurrently.
// base must carry only filters; decorate adds ordering, preloads and computed columns to the
// row query and may be nil.
func Window[T any](ctx context.Context, base *gorm.DB, q Query, decorate func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	q = q.Normalize()
	base = base.Session(&gorm.Session{})

	var (
		total int64
		items []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := base.WithContext(gctx).Count(&total).Error; err != nil {
			return fmt.Errorf("count rows: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		tx := base.WithContext(gctx)
		if decorate != nil {
			tx = decorate(tx)
		}
		if err := tx.Offset(q.Offset()).Limit(q.Limit).Find(&items).Error; err != nil {
			return fmt.Errorf("load rows: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return New(items, total, q), nil
}
