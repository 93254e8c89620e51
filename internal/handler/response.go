package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"himti/internal/auth"
	apperr "himti/internal/errors"
	"himti/internal/pagination"
)

// DataResponse wraps a single resource.
type DataResponse struct {
	Status bool        `json:"status"`
	Data   interface{} `json:"data"`
}

// PageResponse wraps one page of a collection.
type PageResponse struct {
	Status bool            `json:"status"`
	Data   interface{}     `json:"data"`
	Meta   pagination.Meta `json:"meta"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func respond(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, DataResponse{Status: true, Data: data})
}

func respondPage[T any](c echo.Context, page *pagination.Page[T]) error {
	return c.JSON(http.StatusOK, PageResponse{Status: true, Data: page.Items, Meta: page.Meta})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{Status: true, Message: message})
}

// bind decodes the request body into req and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	return c.Validate(req)
}

func paramID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("Invalid " + name)
	}
	return id, nil
}

// pageQuery reads page and limit; missing or malformed values fall back to defaults.
func pageQuery(c echo.Context) pagination.Query {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return pagination.Query{Page: page, Limit: limit}.Normalize()
}

// actor returns the authenticated identity or nil on optional routes.
func actor(c echo.Context) *auth.Identity {
	identity, _ := auth.IdentityFrom(c)
	return identity
}

// requireActor is for routes the gate already protects; a missing identity means the route
// was mounted outside the gate.
func requireActor(c echo.Context) (*auth.Identity, error) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}
