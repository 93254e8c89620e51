package auth

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"himti/internal/model"
)

const identityKey = "identity"

// Identity is the request-scoped view of the authenticated account.
type Identity struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           model.Role `json:"role"`
	ProfilePicture *string    `json:"profile_picture"`
}

func (i *Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin || i.Role == model.RoleSuperAdmin
}

// IdentityOf projects an account onto the fields exposed to handlers.
func IdentityOf(a *model.Account) *Identity {
	return &Identity{
		ID:             a.ID,
		Email:          a.Email,
		Name:           a.Name,
		Role:           a.Role,
		ProfilePicture: a.ProfilePicture,
	}
}

// SetIdentity attaches id to the request context.
func SetIdentity(c echo.Context, id *Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the resolved identity, if any.
func IdentityFrom(c echo.Context) (*Identity, bool) {
	id, ok := c.Get(identityKey).(*Identity)
	return id, ok && id != nil
}
