package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Parkkangwon/trendwatch/internal/metrics"
	"github.com/Parkkangwon/trendwatch/internal/middleware"
	"github.com/Parkkangwon/trendwatch/internal/model"
	"github.com/Parkkangwon/trendwatch/internal/service"
	"github.com/Parkkangwon/trendwatch/internal/store"
)

type AuthHandler struct {
	auth  *service.AuthService
	store *store.Store
}

func NewAuthHandler(auth *service.AuthService, st *store.Store) *AuthHandler {
	return &AuthHandler{auth: auth, store: st}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. The body carries the result
// (name, status, username); the session itself rides a signed cookie.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	result := h.auth.Login(req.Username, req.Password)
	metrics.LoginAttempts.WithLabelValues(string(result.Status)).Inc()

	if result.Status == service.StatusAuthenticated {
		c.Cookie(&fiber.Cookie{
			Name:     h.auth.CookieName(),
			Value:    result.Token,
			Expires:  time.Now().Add(h.auth.CookieTTL()),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})
	}
	return c.JSON(result)
}

// Logout handles POST /api/auth/logout: expire the cookie, session back to
// unset.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.auth.CookieName(),
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"status": "logged_out"})
}

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register — self-signup, always role user.
// When the credential file carries a preauthorized list, the email must be
// on it.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	username, errMsg := middleware.ValidateUsername(req.Username)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	email, errMsg := middleware.ValidateEmail(req.Email)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if req.Name == "" || req.Password == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "name and password are required")
	}

	if err := h.store.RegisterUser(username, req.Name, email, req.Password); err != nil {
		switch {
		case errors.Is(err, store.ErrNotPreauthorized):
			return middleware.ErrorResponse(c, fiber.StatusForbidden, "NOT_PREAUTHORIZED", "Email is not preauthorized for signup")
		case errors.Is(err, store.ErrDuplicateUser):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE_USER", "Username already exists")
		default:
			middleware.Logger.Error().Err(err).Msg("failed to register user")
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(model.UserView{
		Username: username,
		Name:     req.Name,
		Email:    email,
		Role:     model.RoleUser,
	})
}

// Session handles GET /api/auth/session — the current request's view of the
// session cookie.
func (h *AuthHandler) Session(c fiber.Ctx) error {
	return c.JSON(middleware.SessionFromCtx(c))
}
