package middleware

import (
	"context"
	"strings"

	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/flash"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie carries the session token
const SessionCookie = "session_token"

const principalKey = "principal"

// Authenticator resolves a session token into a principal
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

// LoadPrincipal sets the caller's principal when a valid session token is
// present. It never rejects a request.
func LoadPrincipal(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)

		// If not in cookie, try Authorization header
		if token == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if token != "" {
			if p, err := auth.Authenticate(c.UserContext(), token); err == nil {
				c.Locals(principalKey, p)
			}
		}

		return c.Next()
	}
}

// Principal returns the authenticated caller
func Principal(c *fiber.Ctx) (domain.Principal, bool) {
	p, ok := c.Locals(principalKey).(domain.Principal)
	return p, ok
}

// RequirePage guards page routes. Anonymous callers are sent to /login and
// callers with another role are sent home with a flash.
func RequirePage(flashes *flash.Store, roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := Principal(c)
		if !ok {
			_ = flashes.Add(c, flash.Info, "Please log in to access this page.")
			return c.Redirect("/login", fiber.StatusFound)
		}
		if !hasRole(p, roles) {
			_ = flashes.Add(c, flash.Danger, "Access denied")
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireAPI guards JSON routes with 401 and 403 responses
func RequireAPI(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := Principal(c)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}
		if !hasRole(p, roles) {
			return response.Forbidden(c, "Access denied")
		}
		return c.Next()
	}
}

// no roles means any authenticated caller
func hasRole(p domain.Principal, roles []domain.Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
