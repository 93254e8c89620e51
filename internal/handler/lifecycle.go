package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"himti/internal/service"
)

// Lifecycle serves the list, detail and archive endpoints every soft-deletable entity shares.
type Lifecycle[T any] struct {
	svc   service.ArchiveService[T]
	label string
}

func newLifecycle[T any](svc service.ArchiveService[T], label string) Lifecycle[T] {
	return Lifecycle[T]{svc: svc, label: label}
}

func (h Lifecycle[T]) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

func (h Lifecycle[T]) ListDeleted(c echo.Context) error {
	page, err := h.svc.ListDeleted(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

func (h Lifecycle[T]) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	row, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, row)
}

func (h Lifecycle[T]) SoftDelete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.SoftDelete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, service.SoftDeletedMessage(h.label))
}

func (h Lifecycle[T]) Restore(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Restore(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, service.RestoredMessage(h.label))
}

func (h Lifecycle[T]) HardDelete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.HardDelete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, service.PermanentlyDeletedMessage(h.label))
}

// Mount registers the lifecycle routes on g; admin guards every mutation and the deleted list.
func (h Lifecycle[T]) Mount(g *echo.Group, admin echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/deleted", h.ListDeleted, admin)
	g.GET("/:id", h.Get)
	g.DELETE("/:id/soft", h.SoftDelete, admin)
	g.POST("/:id/restore", h.Restore, admin)
	g.DELETE("/:id/permanent", h.HardDelete, admin)
}
