package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/Parkkangwon/trendwatch/internal/metrics"
	"github.com/Parkkangwon/trendwatch/internal/model"
)

type stubFetcher struct {
	videos     []model.Video
	categories model.CategoryMap
	calls      int
}

func (f *stubFetcher) FetchTrending(ctx context.Context, region string, maxResults int64) []model.Video {
	f.calls++
	return f.videos
}

func (f *stubFetcher) FetchCategories(ctx context.Context, region string) model.CategoryMap {
	return f.categories
}

func newTestCatalog(f *stubFetcher) *CatalogService {
	return NewCatalogService(f, NewCacheService(""), "KR", 30, zerolog.Nop())
}

func TestTrendingFiltered_FormatsViews(t *testing.T) {
	published := time.Now().UTC().Add(-3 * 24 * time.Hour)
	fetcher := &stubFetcher{videos: []model.Video{
		{ID: "1", Title: "Cat Video", Channel: "Pets", ViewCount: 12345, LikeCount: 500, Duration: "4:05", PublishedAt: published},
	}}
	svc := newTestCatalog(fetcher)

	resp := svc.TrendingFiltered(context.Background(), model.DefaultCriteria())
	if resp.Total != 1 || len(resp.Videos) != 1 {
		t.Fatalf("total = %d, videos = %d", resp.Total, len(resp.Videos))
	}
	v := resp.Videos[0]
	if v.Views != "1.2만" {
		t.Errorf("views = %q, want 1.2만", v.Views)
	}
	if v.Likes != "500" {
		t.Errorf("likes = %q, want 500", v.Likes)
	}
	if v.Age != "3일 전" {
		t.Errorf("age = %q, want 3일 전", v.Age)
	}
	if resp.Warning != "" {
		t.Errorf("unexpected warning %q", resp.Warning)
	}
	if resp.FetchedAt.IsZero() {
		t.Error("fetchedAt not set")
	}
}

func TestTrendingFiltered_EmptyBatchWarns(t *testing.T) {
	svc := newTestCatalog(&stubFetcher{})

	resp := svc.TrendingFiltered(context.Background(), model.DefaultCriteria())
	if resp.Total != 0 || len(resp.Videos) != 0 {
		t.Fatalf("expected empty response, got %+v", resp)
	}
	if resp.Warning == "" {
		t.Error("empty provider batch must carry a warning")
	}
}

func TestTrendingFiltered_NoMatchesWarnsDifferently(t *testing.T) {
	fetcher := &stubFetcher{videos: []model.Video{
		{ID: "1", Title: "Cat Video", Channel: "Pets", ViewCount: 500},
	}}
	svc := newTestCatalog(fetcher)

	criteria := model.DefaultCriteria()
	criteria.Query = "zebra"
	resp := svc.TrendingFiltered(context.Background(), criteria)
	if resp.Total != 0 {
		t.Fatalf("expected no matches, got %d", resp.Total)
	}
	if resp.Warning == "" {
		t.Error("filtered-to-empty response must carry a warning")
	}

	empty := newTestCatalog(&stubFetcher{}).TrendingFiltered(context.Background(), model.DefaultCriteria())
	if empty.Warning == resp.Warning {
		t.Error("fetch failure and no-match warnings should differ")
	}
}

func TestTrendingFiltered_CountsEmptyReasons(t *testing.T) {
	failed := metrics.EmptyResponses.WithLabelValues(metrics.ReasonFetchFailed)
	noMatch := metrics.EmptyResponses.WithLabelValues(metrics.ReasonNoMatches)
	failedBefore := testutil.ToFloat64(failed)
	noMatchBefore := testutil.ToFloat64(noMatch)

	newTestCatalog(&stubFetcher{}).TrendingFiltered(context.Background(), model.DefaultCriteria())
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("fetch_failed delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(noMatch) - noMatchBefore; got != 0 {
		t.Errorf("no_matches delta = %v, want 0 after fetch failure", got)
	}

	fetcher := &stubFetcher{videos: []model.Video{
		{ID: "1", Title: "Cat Video", Channel: "Pets", ViewCount: 500},
	}}
	criteria := model.DefaultCriteria()
	criteria.Query = "zebra"
	newTestCatalog(fetcher).TrendingFiltered(context.Background(), criteria)
	if got := testutil.ToFloat64(noMatch) - noMatchBefore; got != 1 {
		t.Errorf("no_matches delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("fetch_failed delta = %v, want unchanged after no-match response", got)
	}
}

func TestTrending_NoCacheRefetchesEveryCall(t *testing.T) {
	fetcher := &stubFetcher{videos: []model.Video{{ID: "1", Title: "t", Channel: "c"}}}
	svc := newTestCatalog(fetcher)

	svc.Trending(context.Background())
	svc.Trending(context.Background())
	if fetcher.calls != 2 {
		t.Errorf("calls = %d, want 2 (no caching without redis)", fetcher.calls)
	}
}
