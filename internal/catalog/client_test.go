package catalog

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"

	"github.com/Parkkangwon/trendwatch/internal/metrics"
)

func validItem() *youtube.Video {
	return &youtube.Video{
		Id: "dQw4w9WgXcQ",
		Snippet: &youtube.VideoSnippet{
			Title:        "Cat Video",
			ChannelTitle: "Pets",
			PublishedAt:  "2024-01-02T03:04:05Z",
			CategoryId:   "15",
			Thumbnails: &youtube.ThumbnailDetails{
				High: &youtube.Thumbnail{Url: "https://img.example/high.jpg"},
			},
		},
		Statistics: &youtube.VideoStatistics{
			ViewCount:    12345,
			LikeCount:    678,
			CommentCount: 9,
		},
		ContentDetails: &youtube.VideoContentDetails{Duration: "PT4M5S"},
	}
}

func TestMapVideo_Complete(t *testing.T) {
	v, ok := mapVideo(validItem())
	if !ok {
		t.Fatal("complete item rejected")
	}
	if v.ID != "dQw4w9WgXcQ" || v.Title != "Cat Video" || v.Channel != "Pets" {
		t.Errorf("identity fields wrong: %+v", v)
	}
	if v.Thumbnail != "https://img.example/high.jpg" {
		t.Errorf("thumbnail = %q", v.Thumbnail)
	}
	if v.ViewCount != 12345 || v.LikeCount != 678 || v.CommentCount != 9 {
		t.Errorf("statistics wrong: %+v", v)
	}
	if v.Duration != "4:05" {
		t.Errorf("duration = %q, want 4:05", v.Duration)
	}
	if v.URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("url = %q", v.URL)
	}
	if v.CategoryID != "15" {
		t.Errorf("categoryId = %q", v.CategoryID)
	}
	if v.PublishedAt.IsZero() {
		t.Error("publishedAt not parsed")
	}
}

func TestMapVideo_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*youtube.Video)
	}{
		{"nil snippet", func(v *youtube.Video) { v.Snippet = nil }},
		{"empty title", func(v *youtube.Video) { v.Snippet.Title = "" }},
		{"empty channel", func(v *youtube.Video) { v.Snippet.ChannelTitle = "" }},
		{"nil thumbnails", func(v *youtube.Video) { v.Snippet.Thumbnails = nil }},
		{"empty thumbnail urls", func(v *youtube.Video) {
			v.Snippet.Thumbnails = &youtube.ThumbnailDetails{High: &youtube.Thumbnail{}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(item)
			if _, ok := mapVideo(item); ok {
				t.Error("item with missing required field was accepted")
			}
		})
	}
}

func TestMapVideo_OptionalFieldDefaults(t *testing.T) {
	item := validItem()
	item.Statistics = nil
	item.ContentDetails = nil
	item.Snippet.PublishedAt = ""

	v, ok := mapVideo(item)
	if !ok {
		t.Fatal("item with only required fields rejected")
	}
	if v.ViewCount != 0 || v.LikeCount != 0 || v.CommentCount != 0 {
		t.Errorf("missing statistics should default to zero: %+v", v)
	}
	if v.Duration != "0:00" {
		t.Errorf("missing duration = %q, want 0:00", v.Duration)
	}
	if !v.PublishedAt.IsZero() {
		t.Errorf("unparsable publishedAt should stay zero, got %v", v.PublishedAt)
	}
}

func TestPickThumbnail_Ladder(t *testing.T) {
	tests := []struct {
		name string
		in   *youtube.ThumbnailDetails
		want string
	}{
		{"nil details", nil, ""},
		{"high preferred", &youtube.ThumbnailDetails{
			High:    &youtube.Thumbnail{Url: "high"},
			Medium:  &youtube.Thumbnail{Url: "medium"},
			Default: &youtube.Thumbnail{Url: "default"},
		}, "high"},
		{"falls to medium", &youtube.ThumbnailDetails{
			Medium:  &youtube.Thumbnail{Url: "medium"},
			Default: &youtube.Thumbnail{Url: "default"},
		}, "medium"},
		{"falls to default", &youtube.ThumbnailDetails{
			Default: &youtube.Thumbnail{Url: "default"},
		}, "default"},
		{"all empty", &youtube.ThumbnailDetails{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickThumbnail(tt.in); got != tt.want {
				t.Errorf("pickThumbnail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  *googleapi.Error
		want bool
	}{
		{"quotaExceeded reason", &googleapi.Error{
			Code:   403,
			Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}},
		}, true},
		{"dailyLimitExceeded reason", &googleapi.Error{
			Errors: []googleapi.ErrorItem{{Reason: "dailyLimitExceeded"}},
		}, true},
		{"quota in message", &googleapi.Error{Message: "Quota exceeded for today"}, true},
		{"plain forbidden", &googleapi.Error{
			Code:    403,
			Message: "Forbidden",
			Errors:  []googleapi.ErrorItem{{Reason: "forbidden"}},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuotaError(tt.err); got != tt.want {
				t.Errorf("isQuotaError = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 300)
	if got := truncate(long, 200); len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate(long, 200) length = %d", len(got))
	}
	if got := truncate("short", 200); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
}

func TestTruncate_KeepsRuneBoundary(t *testing.T) {
	// 300 bytes of 3-byte hangul; byte 200 falls inside a rune.
	korean := strings.Repeat("할", 100)
	got := truncate(korean, 200)
	if !utf8.ValidString(got) {
		t.Errorf("truncate split a rune: %q", got[:12])
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
	if len(got) != 198+3 {
		t.Errorf("length = %d, want cut backed up to byte 198", len(got))
	}
}

func TestLogProviderError_CountsErrorFetch(t *testing.T) {
	c := &Client{log: zerolog.Nop()}
	counter := metrics.CatalogFetches.WithLabelValues(opTrending, metrics.OutcomeError)
	before := testutil.ToFloat64(counter)

	c.logProviderError(opTrending, errors.New("connection reset"))
	c.logProviderError(opTrending, &googleapi.Error{
		Code:   403,
		Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}},
	})

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("error fetch delta = %v, want 2", got)
	}
}
