package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"himti/internal/model"
	"himti/internal/service"
)

// EventHandler serves events and their galleries.
type EventHandler struct {
	Lifecycle[model.Event]
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{Lifecycle: newLifecycle[model.Event](svc, "Event"), svc: svc}
}

// Create godoc
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Param request body service.EventInput true "Event"
// @Success 201 {object} DataResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req service.EventInput
	if err := bind(c, &req); err != nil {
		return err
	}
	event, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, event)
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateEventInput
	if err := bind(c, &req); err != nil {
		return err
	}
	event, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, event)
}

// GalleryHandler serves event photos.
type GalleryHandler struct {
	Lifecycle[model.Gallery]
	svc service.GalleryService
}

func NewGalleryHandler(svc service.GalleryService) *GalleryHandler {
	return &GalleryHandler{Lifecycle: newLifecycle[model.Gallery](svc, "Gallery"), svc: svc}
}

// ListByEvent godoc
// @Summary Photos of one event
// @Tags galleries
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} PageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /galleries/event/{eventId} [get]
func (h *GalleryHandler) ListByEvent(c echo.Context) error {
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return err
	}
	page, err := h.svc.ListByEvent(c.Request().Context(), eventID, pageQuery(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

// Create godoc
// @Summary Add a photo to an event
// @Tags galleries
// @Accept json
// @Produce json
// @Param request body service.GalleryInput true "Gallery"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /galleries [post]
func (h *GalleryHandler) Create(c echo.Context) error {
	var req service.GalleryInput
	if err := bind(c, &req); err != nil {
		return err
	}
	gallery, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, gallery)
}

func (h *GalleryHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateGalleryInput
	if err := bind(c, &req); err != nil {
		return err
	}
	gallery, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, gallery)
}
