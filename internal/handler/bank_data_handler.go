package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"himti/internal/service"
)

// BankDataHandler serves shared document links.
type BankDataHandler struct {
	svc service.BankDataService
}

func NewBankDataHandler(svc service.BankDataService) *BankDataHandler {
	return &BankDataHandler{svc: svc}
}

// List godoc
// @Summary List bank data
// @Tags bank-data
// @Produce json
// @Success 200 {object} PageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /bank-data [get]
func (h *BankDataHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return respondPage(c, page)
}

func (h *BankDataHandler) Get(c echo.Context) error {
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

// Create godoc
// @Summary Create bank data
// @Tags bank-data
// @Accept json
// @Produce json
// @Param request body service.BankDataInput true "Bank data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /bank-data [post]
func (h *BankDataHandler) Create(c echo.Context) error {
	var req service.BankDataInput
	if err := bind(c, &req); err != nil {
		return err
	}
	row, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, row)
}

func (h *BankDataHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateBankDataInput
	if err := bind(c, &req); err != nil {
		return err
	}
	row, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, row)
}

func (h *BankDataHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respondMessage(c, "Bank data deleted successfully")
}
