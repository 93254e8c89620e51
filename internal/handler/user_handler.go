package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"himti/internal/model"
	"himti/internal/service"
)

// UserHandler serves account endpoints for owners and administrators.
type UserHandler struct {
	Lifecycle[model.Account]
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{Lifecycle: newLifecycle[model.Account](svc, "User"), svc: svc}
}

// Me godoc
// @Summary Current account
// @Tags users
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	identity, err := requireActor(c)
	if err != nil {
		return err
	}
	account, err := h.svc.Me(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, account)
}

// UpdateProfile godoc
// @Summary Update a profile
// @Description Owners may edit themselves; administrators may edit anyone.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body service.UpdateProfileInput true "Profile fields"
// @Success 200 {object} DataResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	identity, err := requireActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateProfileInput
	if err := bind(c, &req); err != nil {
		return err
	}
	account, err := h.svc.UpdateProfile(c.Request().Context(), identity, id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, account)
}

// CreateUser godoc
// @Summary Create user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body service.CreateUserInput true "User payload"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req service.CreateUserInput
	if err := bind(c, &req); err != nil {
		return err
	}
	account, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, account)
}

// CreateSuperAdmin godoc
// @Summary Create a super admin
// @Tags admin
// @Accept json
// @Produce json
// @Param request body service.CreateUserInput true "User payload"
// @Success 201 {object} DataResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users/super-admin [post]
func (h *UserHandler) CreateSuperAdmin(c echo.Context) error {
	var req service.CreateUserInput
	if err := bind(c, &req); err != nil {
		return err
	}
	account, err := h.svc.CreateSuperAdmin(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, account)
}

// UpdateUser godoc
// @Summary Update user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body service.UpdateUserInput true "User fields"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users/{id} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateUserInput
	if err := bind(c, &req); err != nil {
		return err
	}
	account, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, account)
}

// DeleteUser godoc
// @Summary Permanently delete user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.HardDelete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "User deleted successfully")
}
