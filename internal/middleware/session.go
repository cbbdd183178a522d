package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Parkkangwon/trendwatch/internal/model"
	"github.com/Parkkangwon/trendwatch/internal/service"
)

// sessionLocalKey is the request-locals key holding the SessionState value.
const sessionLocalKey = "sessionState"

// NewSession returns a middleware that decodes the session cookie into a
// SessionState value for this request. The state is computed fresh on every
// request and carried only in locals; an unreadable cookie means anonymous.
func NewSession(auth *service.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		state := auth.ParseToken(c.Cookies(auth.CookieName()))
		c.Locals(sessionLocalKey, state)
		return c.Next()
	}
}

// SessionFromCtx returns the SessionState computed for this request.
func SessionFromCtx(c fiber.Ctx) model.SessionState {
	if state, ok := c.Locals(sessionLocalKey).(model.SessionState); ok {
		return state
	}
	return model.Anonymous()
}

// RequireAdmin guards the user-management surface: the session must be
// authenticated and carry the admin role.
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		state := SessionFromCtx(c)
		if state.Status != model.StatusAuthenticated {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Login required")
		}
		if state.Role != model.RoleAdmin {
			return ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Admin role required")
		}
		return c.Next()
	}
}
