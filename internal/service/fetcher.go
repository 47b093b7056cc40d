package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kapu/bilibili-analyzer-go/internal/config"
	"github.com/kapu/bilibili-analyzer-go/internal/constants"
	"github.com/kapu/bilibili-analyzer-go/internal/domain"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// VideoSource resolves one video's detail record from an alternative
// origin, such as the page scraper.
type VideoSource interface {
	FetchVideoDetail(ctx context.Context, bvid string) (*domain.VideoDetail, error)
}

// Fetcher layers ordering, fallback, and pacing over the raw client:
// compared videos are fetched concurrently but returned in input order,
// and creator upload walks pause between requests.
type Fetcher struct {
	client      *BilibiliClient
	fallback    VideoSource
	delay       time.Duration
	concurrency int
	logger      *zap.Logger
}

func NewFetcher(client *BilibiliClient, fallback VideoSource, cfg config.Config, logger *zap.Logger) *Fetcher {
	concurrency := cfg.Analyze.FetchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Fetcher{
		client:      client,
		fallback:    fallback,
		delay:       cfg.Bilibili.RequestDelay,
		concurrency: concurrency,
		logger:      logger,
	}
}

// FetchVideo resolves one video, trying the REST endpoint first and the
// page scraper second.
func (f *Fetcher) FetchVideo(ctx context.Context, bvid string) (*domain.VideoDetail, error) {
	detail, err := f.client.GetVideoDetail(ctx, bvid)
	if err == nil {
		return detail, nil
	}
	if f.fallback == nil {
		return nil, err
	}

	f.logger.Warn("API fetch failed, falling back to page scrape",
		zap.String("bvid", bvid),
		zap.Error(err),
	)
	return f.fallback.FetchVideoDetail(ctx, bvid)
}

// FetchVideos resolves several videos concurrently. Results keep the
// input order; the first failure is returned.
func (f *Fetcher) FetchVideos(ctx context.Context, bvids []string) ([]*domain.VideoDetail, error) {
	details := make([]*domain.VideoDetail, len(bvids))
	errs := make([]error, len(bvids))

	p := pool.New().WithMaxGoroutines(f.concurrency)
	for i, bvid := range bvids {
		i, bvid := i, bvid
		p.Go(func() {
			details[i], errs[i] = f.FetchVideo(ctx, bvid)
		})
	}
	p.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", bvids[i], err)
		}
	}
	return details, nil
}

// FetchRecentUploads resolves up to limit of a creator's newest uploads,
// pausing between detail requests. Individual failures are skipped so a
// single removed video doesn't abort the analysis.
func (f *Fetcher) FetchRecentUploads(ctx context.Context, mid int64, limit int) ([]*domain.VideoDetail, error) {
	pageSize := constants.AnalyzeConfig.UploadsPageSize
	if limit > 0 && limit < pageSize {
		pageSize = limit
	}

	refs, err := f.client.GetUserVideos(ctx, mid, 1, pageSize)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}

	details := make([]*domain.VideoDetail, 0, len(refs))
	for i, ref := range refs {
		if i > 0 {
			if err := f.pause(ctx); err != nil {
				return nil, err
			}
		}

		detail, err := f.FetchVideo(ctx, ref.Bvid)
		if err != nil {
			f.logger.Warn("Skipping upload",
				zap.String("bvid", ref.Bvid),
				zap.Error(err),
			)
			continue
		}
		details = append(details, detail)
	}

	f.logger.Info("Recent uploads resolved",
		zap.Int64("mid", mid),
		zap.Int("requested", len(refs)),
		zap.Int("resolved", len(details)),
	)
	return details, nil
}

func (f *Fetcher) pause(ctx context.Context) error {
	if f.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(f.delay):
		return nil
	}
}

// StatsOf projects detail records onto their statistics, keeping order.
func StatsOf(details []*domain.VideoDetail) []domain.VideoStats {
	stats := make([]domain.VideoStats, len(details))
	for i, d := range details {
		stats[i] = d.Stats
	}
	return stats
}

// PubDatesOf projects detail records onto their publish timestamps.
func PubDatesOf(details []*domain.VideoDetail) []int64 {
	dates := make([]int64, len(details))
	for i, d := range details {
		dates[i] = d.PubDate
	}
	return dates
}
