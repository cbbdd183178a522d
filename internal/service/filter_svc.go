package service

import (
	"strings"

	"github.com/Parkkangwon/trendwatch/internal/model"
)

// FilterVideos narrows a trending batch by the three independent criteria:
// free-text query over title/channel, category membership, and the inclusive
// view-count range. Predicates are conjunctive and order-insensitive; the
// result preserves the input order.
func FilterVideos(videos []model.Video, criteria model.FilterCriteria) []model.Video {
	filtered := make([]model.Video, 0, len(videos))
	for _, v := range videos {
		if matchesCriteria(v, criteria) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func matchesCriteria(v model.Video, c model.FilterCriteria) bool {
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		if !strings.Contains(strings.ToLower(v.Title), q) &&
			!strings.Contains(strings.ToLower(v.Channel), q) {
			return false
		}
	}

	if len(c.Categories) > 0 {
		if _, ok := c.Categories[v.CategoryID]; !ok {
			return false
		}
	}

	return v.ViewCount >= c.MinViews && v.ViewCount <= c.MaxViews
}
