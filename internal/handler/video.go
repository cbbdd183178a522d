package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Parkkangwon/trendwatch/internal/middleware"
	"github.com/Parkkangwon/trendwatch/internal/model"
	"github.com/Parkkangwon/trendwatch/internal/service"
)

type VideoHandler struct {
	svc *service.CatalogService
}

func NewVideoHandler(svc *service.CatalogService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// GetTrending handles GET /api/videos/trending?query=&categories=&minViews=&maxViews=
func (h *VideoHandler) GetTrending(c fiber.Ctx) error {
	minViews, maxViews, errMsg := middleware.ParseViewRange(
		fiber.Query[string](c, "minViews"),
		fiber.Query[string](c, "maxViews"),
	)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_RANGE", errMsg)
	}

	criteria := model.FilterCriteria{
		Query:      middleware.ValidateSearchQuery(fiber.Query[string](c, "query")),
		Categories: middleware.ParseCategories(fiber.Query[string](c, "categories")),
		MinViews:   minViews,
		MaxViews:   maxViews,
	}

	resp := h.svc.TrendingFiltered(c.Context(), criteria)
	return c.JSON(resp)
}

// GetCategories handles GET /api/categories
func (h *VideoHandler) GetCategories(c fiber.Ctx) error {
	categories := h.svc.Categories(c.Context())
	return c.JSON(model.CategoriesResponse{Categories: categories})
}
