package router

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperr "himti/internal/errors"
)

// ErrorHandler renders every error as the JSON error envelope and logs server faults.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := resolve(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
			)
		}

		body := apperr.ErrorResponse{
			Status:     false,
			Message:    message,
			StatusCode: status,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Path:       c.Request().URL.Path,
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

func resolve(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			if status, message, ok := resolveApp(he.Internal); ok {
				return status, message
			}
		}
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		if he.Code >= http.StatusInternalServerError {
			return he.Code, "Internal server error"
		}
		return he.Code, fmt.Sprint(he.Message)
	}
	mapped := apperr.MapErrorToHTTP(err)
	return mapped.StatusCode, mapped.Message
}

// resolveApp maps errors that carry a domain kind.
func resolveApp(err error) (int, string, bool) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return 0, "", false
	}
	mapped := apperr.MapErrorToHTTP(appErr)
	return mapped.StatusCode, mapped.Message, true
}
