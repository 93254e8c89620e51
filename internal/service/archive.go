package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperr "himti/internal/errors"
	"himti/internal/pagination"
	"himti/internal/repository"
)

// ArchiveService exposes the soft-delete lifecycle of one entity type with client-facing errors.
type ArchiveService[T any] interface {
	List(ctx context.Context, q pagination.Query) (*pagination.Page[T], error)
	ListDeleted(ctx context.Context, q pagination.Query) (*pagination.Page[T], error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

type archive[T any] struct {
	repo  repository.Lifecycle[T]
	label string
}

// newArchive wraps repo; label is the capitalized entity name used in messages.
func newArchive[T any](repo repository.Lifecycle[T], label string) archive[T] {
	return archive[T]{repo: repo, label: label}
}

func (a archive[T]) notFound() error {
	return apperr.NotFound(a.label + " not found")
}

func (a archive[T]) deletedNotFound() error {
	return apperr.NotFound("Deleted " + strings.ToLower(a.label) + " not found")
}

// lookup maps a missing row to NotFound and anything else to Internal.
func (a archive[T]) lookup(row *T, err error, missing error) (*T, error) {
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, missing
		}
		return nil, apperr.Internal("Failed to load "+strings.ToLower(a.label), err)
	}
	return row, nil
}

func (a archive[T]) mutate(err error, missing error, action string) error {
	if err == nil {
		return nil
	}
	if apperr.IsNotFound(err) {
		return missing
	}
	return apperr.Internal("Failed to "+action+" "+strings.ToLower(a.label), err)
}

func (a archive[T]) List(ctx context.Context, q pagination.Query) (*pagination.Page[T], error) {
	page, err := a.repo.ListActive(ctx, q)
	if err != nil {
		return nil, apperr.Internal("Failed to list "+strings.ToLower(a.label), err)
	}
	return page, nil
}

func (a archive[T]) ListDeleted(ctx context.Context, q pagination.Query) (*pagination.Page[T], error) {
	page, err := a.repo.ListDeleted(ctx, q)
	if err != nil {
		return nil, apperr.Internal("Failed to list deleted "+strings.ToLower(a.label), err)
	}
	return page, nil
}

func (a archive[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	row, err := a.repo.FindActive(ctx, id)
	return a.lookup(row, err, a.notFound())
}

func (a archive[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return a.mutate(a.repo.SoftDelete(ctx, id), a.notFound(), "delete")
}

func (a archive[T]) Restore(ctx context.Context, id uuid.UUID) error {
	return a.mutate(a.repo.Restore(ctx, id), a.deletedNotFound(), "restore")
}

func (a archive[T]) HardDelete(ctx context.Context, id uuid.UUID) error {
	return a.mutate(a.repo.HardDelete(ctx, id), a.notFound(), "delete")
}

// Lifecycle confirmation messages shared by handlers.
func SoftDeletedMessage(label string) string { return label + " soft deleted successfully" }

func RestoredMessage(label string) string { return label + " restored successfully" }

func PermanentlyDeletedMessage(label string) string {
	return label + " permanently deleted successfully"
}
