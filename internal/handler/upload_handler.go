package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "himti/internal/errors"
	"himti/internal/service"
)

// UploadHandler accepts media files.
type UploadHandler struct {
	svc service.UploadService
}

func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// UploadResponse carries the public URL of a stored file.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload godoc
// @Summary Upload an image
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "jpg, jpeg, png, gif or webp up to 5MB"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /upload/media [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return apperr.BadRequest("No file uploaded")
		}
		return apperr.BadRequest("Invalid multipart form")
	}
	if header.Size > service.MaxUploadSize {
		return apperr.BadRequest("File too large. Maximum size is 5MB")
	}

	file, err := header.Open()
	if err != nil {
		return apperr.BadRequest("Unable to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxUploadSize+1))
	if err != nil {
		return apperr.BadRequest("Unable to read uploaded file")
	}

	url, err := h.svc.Upload(c.Request().Context(), header.Filename, data)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, UploadResponse{URL: url})
}
