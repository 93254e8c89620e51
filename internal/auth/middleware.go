package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperr "himti/internal/errors"
	"himti/internal/model"
)

const claimsKey = "session_claims"

// AccountFinder resolves a token subject to a live account.
type AccountFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
}

// Route identifies an endpoint by method and registered path pattern.
type Route struct {
	Method string
	Path   string
}

func (r Route) key() string {
	return r.Method + " " + r.Path
}

// Gate resolves the session cookie into an Identity. Requests under the auth prefix and CORS
// preflights pass untouched; optional routes fall through anonymously when the token is
// missing or unusable; every other route requires a valid session.
type Gate struct {
	tokens     *JWTService
	accounts   AccountFinder
	store      TokenStoreInterface
	authPrefix string
	optional   map[string]struct{}
	log        *zap.Logger
}

func NewGate(tokens *JWTService, accounts AccountFinder, store TokenStoreInterface, authPrefix string, optional []Route, log *zap.Logger) *Gate {
	g := &Gate{
		tokens:     tokens,
		accounts:   accounts,
		store:      store,
		authPrefix: authPrefix,
		optional:   make(map[string]struct{}, len(optional)),
		log:        log,
	}
	for _, r := range optional {
		g.optional[r.key()] = struct{}{}
	}
	return g
}

// Middleware returns the echo middleware enforcing the gate.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		Skipper:                g.skip,
		TokenLookup:            "cookie:" + CookieName,
		ContextKey:             claimsKey,
		ContinueOnIgnoredError: true,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			return g.tokens.ValidateToken(raw)
		},
		ErrorHandler: g.onTokenError,
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(g.resolve(next))
	}
}

func (g *Gate) skip(c echo.Context) bool {
	if c.Request().Method == http.MethodOptions {
		return true
	}
	return g.authPrefix != "" && strings.HasPrefix(c.Request().URL.Path, g.authPrefix)
}

func (g *Gate) isOptional(c echo.Context) bool {
	_, ok := g.optional[Route{Method: c.Request().Method, Path: c.Path()}.key()]
	return ok
}

func (g *Gate) onTokenError(c echo.Context, err error) error {
	if g.isOptional(c) {
		return nil
	}
	switch {
	case errors.Is(err, ErrTokenExpired):
		return apperr.Unauthorized("Token has expired")
	case errors.Is(err, ErrTokenInvalid):
		return apperr.Unauthorized("Invalid token")
	default:
		return apperr.Unauthorized("No token provided")
	}
}

func (g *Gate) resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsKey).(*Claims)
		if !ok {
			return next(c)
		}

		identity, err := g.identify(c.Request().Context(), claims)
		if err != nil {
			if g.isOptional(c) && !errors.Is(err, apperr.ErrInternal) {
				return next(c)
			}
			return err
		}
		SetIdentity(c, identity)
		return next(c)
	}
}

func (g *Gate) identify(ctx context.Context, claims *Claims) (*Identity, error) {
	if g.store != nil {
		if revoked, _ := g.store.IsRevoked(ctx, claims.ID); revoked {
			return nil, apperr.Unauthorized("Token has been revoked")
		}
	}

	accountID, err := claims.AccountID()
	if err != nil {
		return nil, apperr.Unauthorized("Invalid token")
	}

	account, err := g.accounts.FindByID(ctx, accountID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("User not found")
		}
		g.log.Error("resolve session account", zap.String("account_id", accountID.String()), zap.Error(err))
		return nil, apperr.Internal("Authentication failed", err)
	}
	return IdentityOf(account), nil
}

// RequireRoles rejects requests whose identity lacks one of roles.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return apperr.Unauthorized("Authentication required")
			}
			if _, ok := allowed[identity.Role]; !ok {
				return apperr.Forbidden("Insufficient permissions")
			}
			return next(c)
		}
	}
}

// RequireAdmin allows ADMIN and SUPER_ADMIN.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)
}
