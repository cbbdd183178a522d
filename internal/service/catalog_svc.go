package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Parkkangwon/trendwatch/internal/metrics"
	"github.com/Parkkangwon/trendwatch/internal/model"
	"github.com/Parkkangwon/trendwatch/pkg/format"
)

// Warnings carried on an empty trending response. An empty batch means the
// provider failed or had nothing; zero matches means the filter was too
// narrow. The two cases are counted separately.
const (
	noVideosWarning  = "동영상을 불러오는 데 실패했습니다. 나중에 다시 시도해주세요."
	noMatchesWarning = "조건에 맞는 동영상이 없습니다. 필터를 조정해보세요."
)

// Fetcher is the provider boundary the catalog service consumes. Both calls
// degrade to empty collections instead of returning errors.
type Fetcher interface {
	FetchTrending(ctx context.Context, region string, maxResults int64) []model.Video
	FetchCategories(ctx context.Context, region string) model.CategoryMap
}

// CatalogService orchestrates one synchronous fetch → filter → format cycle
// per request against the fixed region.
type CatalogService struct {
	fetcher    Fetcher
	cache      *CacheService
	region     string
	maxResults int64
	log        zerolog.Logger
}

func NewCatalogService(fetcher Fetcher, cache *CacheService, region string, maxResults int64, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		fetcher:    fetcher,
		cache:      cache,
		region:     region,
		maxResults: maxResults,
		log:        log,
	}
}

// Trending returns the current trending batch, consulting the optional cache
// first.
func (s *CatalogService) Trending(ctx context.Context) []model.Video {
	if cached := s.cache.GetTrending(ctx, s.region); cached != nil {
		return cached
	}

	videos := s.fetcher.FetchTrending(ctx, s.region, s.maxResults)
	if err := s.cache.SetTrending(ctx, s.region, videos); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache trending batch")
	}
	return videos
}

// Categories returns the region's category taxonomy, empty on failure.
func (s *CatalogService) Categories(ctx context.Context) model.CategoryMap {
	if cached := s.cache.GetCategories(ctx, s.region); cached != nil {
		return cached
	}

	categories := s.fetcher.FetchCategories(ctx, s.region)
	if err := s.cache.SetCategories(ctx, s.region, categories); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache categories")
	}
	return categories
}

// TrendingFiltered fetches, filters, and formats the trending chart for one
// request.
func (s *CatalogService) TrendingFiltered(ctx context.Context, criteria model.FilterCriteria) model.TrendingResponse {
	videos := s.Trending(ctx)
	fetchedAt := time.Now().UTC()

	resp := model.TrendingResponse{
		Videos:    buildViews(FilterVideos(videos, criteria)),
		FetchedAt: fetchedAt,
	}
	resp.Total = len(resp.Videos)

	if len(videos) == 0 {
		resp.Warning = noVideosWarning
		metrics.EmptyResponses.WithLabelValues(metrics.ReasonFetchFailed).Inc()
	} else if resp.Total == 0 {
		resp.Warning = noMatchesWarning
		metrics.EmptyResponses.WithLabelValues(metrics.ReasonNoMatches).Inc()
	}
	return resp
}

func buildViews(videos []model.Video) []model.VideoView {
	views := make([]model.VideoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, model.VideoView{
			Video:    v,
			Views:    format.Count(v.ViewCount),
			Likes:    format.Count(v.LikeCount),
			Comments: format.Count(v.CommentCount),
			Age:      format.TimeAgo(v.PublishedAt),
		})
	}
	return views
}
