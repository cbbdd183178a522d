// Package catalog is the narrow boundary to the YouTube Data API: one call
// for the region's trending chart, one for the category taxonomy. Provider
// failures never reach the caller as errors; they degrade to empty
// collections with the reason logged.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/Parkkangwon/trendwatch/internal/metrics"
	"github.com/Parkkangwon/trendwatch/internal/model"
	"github.com/Parkkangwon/trendwatch/pkg/format"
)

const (
	watchURLPrefix = "https://www.youtube.com/watch?v="
	zeroDuration   = "PT0S"
	maxErrTruncate = 200

	opTrending   = "trending"
	opCategories = "categories"
)

// Client wraps the YouTube Data API v3 service.
type Client struct {
	svc     *youtube.Service
	timeout time.Duration
	log     zerolog.Logger
}

// New builds a Client authenticated by API key. The timeout bounds each
// provider call; the original system had none, this is a hardening addition.
func New(ctx context.Context, apiKey string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, timeout: timeout, log: log}, nil
}

// FetchTrending returns the region's most-popular chart, at most maxResults
// records. Items missing a title, channel name, or thumbnail are skipped;
// missing statistics default to zero and a missing duration to 0:00. Any
// provider failure yields an empty slice.
func (c *Client) FetchTrending(ctx context.Context, region string, maxResults int64) []model.Video {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.Videos.
		List([]string{"snippet", "statistics", "contentDetails"}).
		Chart("mostPopular").
		RegionCode(region).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		c.logProviderError(opTrending, err)
		return nil
	}
	if len(resp.Items) == 0 {
		c.log.Warn().Str("region", region).Msg("provider returned no trending items")
		metrics.CatalogFetches.WithLabelValues(opTrending, metrics.OutcomeEmpty).Inc()
		return nil
	}

	videos := make([]model.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		v, ok := mapVideo(item)
		if !ok {
			c.log.Debug().Str("videoId", item.Id).Msg("skipping item with missing required fields")
			continue
		}
		videos = append(videos, v)
	}

	if len(videos) == 0 {
		c.log.Error().Str("region", region).Int("items", len(resp.Items)).
			Msg("no usable video records in trending batch")
		metrics.CatalogFetches.WithLabelValues(opTrending, metrics.OutcomeEmpty).Inc()
		return videos
	}
	metrics.CatalogFetches.WithLabelValues(opTrending, metrics.OutcomeOK).Inc()
	return videos
}

// FetchCategories returns the id → display-name category mapping for the
// region, or an empty map on any failure.
func (c *Client) FetchCategories(ctx context.Context, region string) model.CategoryMap {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.svc.VideoCategories.
		List([]string{"snippet"}).
		RegionCode(region).
		Context(ctx).
		Do()
	if err != nil {
		c.logProviderError(opCategories, err)
		return model.CategoryMap{}
	}

	categories := make(model.CategoryMap, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		categories[item.Id] = item.Snippet.Title
	}

	outcome := metrics.OutcomeOK
	if len(categories) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.CatalogFetches.WithLabelValues(opCategories, outcome).Inc()
	return categories
}

// mapVideo converts one provider item into a Video record. The second return
// is false when a required field (title, channel, thumbnail) is absent.
func mapVideo(item *youtube.Video) (model.Video, bool) {
	if item == nil || item.Snippet == nil {
		return model.Video{}, false
	}

	thumb := pickThumbnail(item.Snippet.Thumbnails)
	if item.Snippet.Title == "" || item.Snippet.ChannelTitle == "" || thumb == "" {
		return model.Video{}, false
	}

	duration := zeroDuration
	if item.ContentDetails != nil && item.ContentDetails.Duration != "" {
		duration = item.ContentDetails.Duration
	}

	var views, likes, comments int64
	if item.Statistics != nil {
		views = int64(item.Statistics.ViewCount)
		likes = int64(item.Statistics.LikeCount)
		comments = int64(item.Statistics.CommentCount)
	}

	var published time.Time
	if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
		published = t.UTC()
	}

	return model.Video{
		ID:           item.Id,
		Title:        item.Snippet.Title,
		Channel:      item.Snippet.ChannelTitle,
		Thumbnail:    thumb,
		ViewCount:    views,
		LikeCount:    likes,
		CommentCount: comments,
		Duration:     format.Duration(duration),
		PublishedAt:  published,
		URL:          watchURLPrefix + item.Id,
		CategoryID:   item.Snippet.CategoryId,
	}, true
}

// pickThumbnail walks the thumbnail ladder from the preferred high-resolution
// entry downwards.
func pickThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, candidate := range []*youtube.Thumbnail{t.High, t.Medium, t.Default, t.Standard, t.Maxres} {
		if candidate != nil && candidate.Url != "" {
			return candidate.Url
		}
	}
	return ""
}

// logProviderError triages a provider failure: quota exhaustion gets its own
// message, structured API errors surface the provider's message, everything
// else logs a truncated generic one. Every failure counts as an error fetch.
func (c *Client) logProviderError(op string, err error) {
	metrics.CatalogFetches.WithLabelValues(op, metrics.OutcomeError).Inc()

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if isQuotaError(gerr) {
			c.log.Warn().Str("op", op).Msg("provider quota exceeded, try again tomorrow")
			return
		}
		c.log.Error().Str("op", op).Int("code", gerr.Code).Str("providerMessage", gerr.Message).
			Msg("provider API error")
		return
	}
	c.log.Error().Str("op", op).Str("reason", truncate(err.Error(), maxErrTruncate)).
		Msg("unexpected provider error")
}

func isQuotaError(e *googleapi.Error) bool {
	for _, item := range e.Errors {
		switch item.Reason {
		case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
			return true
		}
	}
	return strings.Contains(strings.ToLower(e.Message), "quota")
}

// truncate cuts s to at most n bytes, backing up so a multibyte rune is never
// split (provider error messages are often Korean).
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
