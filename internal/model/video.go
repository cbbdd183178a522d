package model

import "time"

// Video is a single trending-chart entry. Records are built once per fetch
// cycle from the provider response and never mutated afterwards.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	Thumbnail    string    `json:"thumbnail"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	Duration     string    `json:"duration"` // display form, e.g. "12:34"
	PublishedAt  time.Time `json:"publishedAt"`
	URL          string    `json:"url"`
	CategoryID   string    `json:"categoryId,omitempty"`
}

// CategoryMap maps a category identifier to its display name for one region.
// Rebuilt on every fetch; never persisted.
type CategoryMap map[string]string

// VideoView is a Video plus the formatted strings the grid renders.
type VideoView struct {
	Video
	Views    string `json:"views"`
	Likes    string `json:"likes"`
	Comments string `json:"comments"`
	Age      string `json:"age"`
}

// TrendingResponse is the API response for a filtered trending lookup.
// Warning is set when the provider returned nothing usable; clients render
// "no data" and "error" as the same state.
type TrendingResponse struct {
	Videos    []VideoView `json:"videos"`
	Total     int         `json:"total"`
	FetchedAt time.Time   `json:"fetchedAt"`
	Warning   string      `json:"warning,omitempty"`
}

// CategoriesResponse is the API response for the category taxonomy.
type CategoriesResponse struct {
	Categories CategoryMap `json:"categories"`
}
