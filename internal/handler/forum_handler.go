package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"himti/internal/model"
	"himti/internal/service"
)

// ForumHandler serves community forum posts.
type ForumHandler struct {
	svc service.ForumService
}

func NewForumHandler(svc service.ForumService) *ForumHandler {
	return &ForumHandler{svc: svc}
}

// StatusRequest moves a forum through moderation.
type StatusRequest struct {
	Status model.ForumStatus `json:"status" validate:"required,oneof=PENDING PUBLISHED REJECTED"`
}

// List godoc
// @Summary List forums
// @Tags forums
// @Produce json
// @Param status query string false "PENDING, PUBLISHED or REJECTED" default(PUBLISHED)
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} PageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /forums [get]
func (h *ForumHandler) List(c echo.Context) error {
	status := model.ForumStatus(c.QueryParam("status"))
	page, err := h.svc.ListPublic(c.Request().Context(), status, actor(c), pageQuery(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

// Get godoc
// @Summary Published forum with comments
// @Tags forums
// @Produce json
// @Param id path string true "Forum ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /forums/{id} [get]
func (h *ForumHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	forum, err := h.svc.GetPublished(c.Request().Context(), id, actor(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, forum)
}

// Mine godoc
// @Summary Forums written by the current user
// @Tags forums
// @Produce json
// @Success 200 {object} PageResponse
// @Router /forums/my-forums [get]
func (h *ForumHandler) Mine(c echo.Context) error {
	identity, err := requireActor(c)
	if err != nil {
		return err
	}
	page, err := h.svc.ListMine(c.Request().Context(), identity, pageQuery(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

func (h *ForumHandler) ListDeleted(c echo.Context) error {
	page, err := h.svc.ListDeleted(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

// Create godoc
// @Summary Submit a forum for review
// @Tags forums
// @Accept json
// @Produce json
// @Param request body service.CreateForumInput true "Forum"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /forums [post]
func (h *ForumHandler) Create(c echo.Context) error {
	identity, err := requireActor(c)
	if err != nil {
		return err
	}
	var req service.CreateForumInput
	if err := bind(c, &req); err != nil {
		return err
	}
	forum, err := h.svc.Create(c.Request().Context(), identity, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, forum)
}

// Update godoc
// @Summary Edit an unpublished forum you wrote
// @Tags forums
// @Accept json
// @Produce json
// @Param id path string true "Forum ID"
// @Param request body service.UpdateForumInput true "Fields"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /forums/{id} [patch]
func (h *ForumHandler) Update(c echo.Context) error {
	identity, err := requireActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateForumInput
	if err := bind(c, &req); err != nil {
		return err
	}
	forum, err := h.svc.Update(c.Request().Context(), identity, id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, forum)
}

func (h *ForumHandler) SoftDelete(c echo.Context) error {
	return runOwned(c, h.svc.SoftDelete, service.SoftDeletedMessage("Forum"))
}

func (h *ForumHandler) Restore(c echo.Context) error {
	return runOwned(c, h.svc.Restore, service.RestoredMessage("Forum"))
}

func (h *ForumHandler) HardDelete(c echo.Context) error {
	return runOwned(c, h.svc.HardDelete, service.PermanentlyDeletedMessage("Forum"))
}

// Like godoc
// @Summary Like or unlike a published forum
// @Tags forums
// @Produce json
// @Param id path string true "Forum ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /forums/{id}/like [post]
func (h *ForumHandler) Like(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	liked, err := h.svc.ToggleLike(c.Request().Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respondMessage(c, likeMessage("Forum", liked))
}

// Comment godoc
// @Summary Comment on a published forum
// @Tags forums
// @Accept json
// @Produce json
// @Param id path string true "Forum ID"
// @Param request body service.CommentInput true "Comment"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /forums/{id}/comment [post]
func (h *ForumHandler) Comment(c echo.Context) error {
	identity, err := requireActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.CommentInput
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Comment(c.Request().Context(), identity, id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, comment)
}

// SetStatus godoc
// @Summary Moderate a forum's status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Forum ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} DataResponse
// @Router /admin/forums/{id}/status [patch]
func (h *ForumHandler) SetStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	forum, err := h.svc.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, forum)
}

func (h *ForumHandler) Moderate(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateForumInput
	if err := bind(c, &req); err != nil {
		return err
	}
	forum, err := h.svc.Moderate(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, forum)
}

func (h *ForumHandler) Remove(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Remove(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Forum deleted successfully")
}
