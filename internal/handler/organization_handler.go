package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"himti/internal/model"
	"himti/internal/service"
)

// DepartmentHandler serves departments and their slug lookups.
type DepartmentHandler struct {
	Lifecycle[model.Department]
	svc service.DepartmentService
}

func NewDepartmentHandler(svc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{Lifecycle: newLifecycle[model.Department](svc, "Department"), svc: svc}
}

// GetBySlug godoc
// @Summary Department by slug, with divisions and members
// @Tags departments
// @Produce json
// @Param slug path string true "Department slug"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /departments/slug/{slug} [get]
func (h *DepartmentHandler) GetBySlug(c echo.Context) error {
	department, err := h.svc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, department)
}

// Create godoc
// @Summary Create department
// @Tags departments
// @Accept json
// @Produce json
// @Param request body service.DepartmentInput true "Department"
// @Success 201 {object} DataResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /departments [post]
func (h *DepartmentHandler) Create(c echo.Context) error {
	var req service.DepartmentInput
	if err := bind(c, &req); err != nil {
		return err
	}
	department, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, department)
}

func (h *DepartmentHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateDepartmentInput
	if err := bind(c, &req); err != nil {
		return err
	}
	department, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, department)
}

// DivisionHandler serves divisions and their slug lookups.
type DivisionHandler struct {
	Lifecycle[model.Division]
	svc service.DivisionService
}

func NewDivisionHandler(svc service.DivisionService) *DivisionHandler {
	return &DivisionHandler{Lifecycle: newLifecycle[model.Division](svc, "Division"), svc: svc}
}

// GetBySlug godoc
// @Summary Division by slug, with department and members
// @Tags divisions
// @Produce json
// @Param slug path string true "Division slug"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /divisions/slug/{slug} [get]
func (h *DivisionHandler) GetBySlug(c echo.Context) error {
	division, err := h.svc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, division)
}

// Create godoc
// @Summary Create division
// @Tags divisions
// @Accept json
// @Produce json
// @Param request body service.DivisionInput true "Division"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /divisions [post]
func (h *DivisionHandler) Create(c echo.Context) error {
	var req service.DivisionInput
	if err := bind(c, &req); err != nil {
		return err
	}
	division, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, division)
}

func (h *DivisionHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateDivisionInput
	if err := bind(c, &req); err != nil {
		return err
	}
	division, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, division)
}

// MemberHandler serves organization members.
type MemberHandler struct {
	Lifecycle[model.Member]
	svc service.MemberService
}

func NewMemberHandler(svc service.MemberService) *MemberHandler {
	return &MemberHandler{Lifecycle: newLifecycle[model.Member](svc, "Member"), svc: svc}
}

// Create godoc
// @Summary Create member
// @Tags members
// @Accept json
// @Produce json
// @Param request body service.MemberInput true "Member"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /members [post]
func (h *MemberHandler) Create(c echo.Context) error {
	var req service.MemberInput
	if err := bind(c, &req); err != nil {
		return err
	}
	member, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, member)
}

func (h *MemberHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateMemberInput
	if err := bind(c, &req); err != nil {
		return err
	}
	member, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, member)
}
