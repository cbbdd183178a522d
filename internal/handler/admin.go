package handler

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v3"

	"github.com/Parkkangwon/trendwatch/internal/middleware"
	"github.com/Parkkangwon/trendwatch/internal/model"
	"github.com/Parkkangwon/trendwatch/internal/store"
)

// AdminHandler is the credential-management surface. Every route behind it
// is gated by the admin session middleware.
type AdminHandler struct {
	store *store.Store
}

func NewAdminHandler(st *store.Store) *AdminHandler {
	return &AdminHandler{store: st}
}

// ListUsers handles GET /api/admin/users. Hashes never leave the store.
func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	users := h.store.Users()

	views := make([]model.UserView, 0, len(users))
	for username, rec := range users {
		views = append(views, model.UserView{
			Username: username,
			Name:     rec.Name,
			Email:    rec.Email,
			Role:     rec.Role,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Username < views[j].Username })

	return c.JSON(fiber.Map{"users": views, "total": len(views)})
}

type addUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AddUser handles POST /api/admin/users.
func (h *AdminHandler) AddUser(c fiber.Ctx) error {
	var req addUserRequest
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
	role, errMsg := middleware.ValidateRole(req.Role)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if req.Name == "" || req.Password == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "name and password are required")
	}

	if err := h.store.AddUser(username, req.Name, email, req.Password, role); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE_USER", "Username already exists")
		}
		middleware.Logger.Error().Err(err).Msg("failed to add user")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add user")
	}

	return c.Status(fiber.StatusCreated).JSON(model.UserView{
		Username: username,
		Name:     req.Name,
		Email:    email,
		Role:     role,
	})
}

// DeleteUser handles DELETE /api/admin/users/:username. The reserved admin
// account is refused regardless of who asks.
func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	username, errMsg := middleware.ValidateUsername(c.Params("username"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.store.DeleteUser(username); err != nil {
		switch {
		case errors.Is(err, store.ErrProtectedAccount):
			return middleware.ErrorResponse(c, fiber.StatusForbidden, "PROTECTED_ACCOUNT", "The admin account cannot be deleted")
		case errors.Is(err, store.ErrUnknownUser):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			middleware.Logger.Error().Err(err).Msg("failed to delete user")
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete user")
		}
	}

	return c.JSON(fiber.Map{"status": "deleted", "username": username})
}
