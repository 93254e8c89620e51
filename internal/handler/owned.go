package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"himti/internal/auth"
)

type ownedFunc func(ctx context.Context, actor *auth.Identity, id uuid.UUID) error

// runOwned applies an author-checked lifecycle action to the :id resource.
func runOwned(c echo.Context, fn ownedFunc, message string) error {
	identity, err := requireActor(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := fn(c.Request().Context(), identity, id); err != nil {
		return err
	}
	return respondMessage(c, message)
}

func likeMessage(label string, liked bool) string {
	if liked {
		return label + " liked successfully"
	}
	return label + " unliked successfully"
}
