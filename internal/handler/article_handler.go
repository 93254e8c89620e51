package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"himti/internal/service"
)

// ArticleHandler serves editorial articles.
type ArticleHandler struct {
	svc service.ArticleService
}

func NewArticleHandler(svc service.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// List godoc
// @Summary List articles
// @Tags articles
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} PageResponse
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), actor(c), pageQuery(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

// Get godoc
// @Summary Article detail
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	article, err := h.svc.Get(c.Request().Context(), id, actor(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, article)
}

func (h *ArticleHandler) ListDeleted(c echo.Context) error {
	page, err := h.svc.ListDeleted(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

// Create godoc
// @Summary Publish an article
// @Tags articles
// @Accept json
// @Produce json
// @Param request body service.CreateArticleInput true "Article"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	identity, err := requireActor(c)
	if err != nil {
		return err
	}
	var req service.CreateArticleInput
	if err := bind(c, &req); err != nil {
		return err
	}
	article, err := h.svc.Create(c.Request().Context(), identity, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, article)
}

// Update godoc
// @Summary Edit an article you wrote
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param request body service.UpdateArticleInput true "Fields"
// @Success 200 {object} DataResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{id} [patch]
func (h *ArticleHandler) Update(c echo.Context) error {
	identity, err := requireActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateArticleInput
	if err := bind(c, &req); err != nil {
		return err
	}
	article, err := h.svc.Update(c.Request().Context(), identity, id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, article)
}

func (h *ArticleHandler) SoftDelete(c echo.Context) error {
	return runOwned(c, h.svc.SoftDelete, service.SoftDeletedMessage("Article"))
}

func (h *ArticleHandler) Restore(c echo.Context) error {
	return runOwned(c, h.svc.Restore, service.RestoredMessage("Article"))
}

func (h *ArticleHandler) HardDelete(c echo.Context) error {
	return runOwned(c, h.svc.HardDelete, service.PermanentlyDeletedMessage("Article"))
}

// Like godoc
// @Summary Like or unlike an article
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{id}/like [post]
func (h *ArticleHandler) Like(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	liked, err := h.svc.ToggleLike(c.Request().Context(), actor(c), id)
	if err != nil {
		return err
	}
	return respondMessage(c, likeMessage("Article", liked))
}

func (h *ArticleHandler) Moderate(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateArticleInput
	if err := bind(c, &req); err != nil {
		return err
	}
	article, err := h.svc.Moderate(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, article)
}

func (h *ArticleHandler) Remove(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Remove(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Article deleted successfully")
}
