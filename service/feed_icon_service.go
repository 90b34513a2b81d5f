// ABOUTME: Resolves and persists the favicon url of every feed
// ABOUTME: Candidates come from page snooping, verified with HEAD before persisting

package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"feed-sync/favicon"
	"feed-sync/models"
	"feed-sync/repository"
	"feed-sync/utils"
)

const defaultIconWorkers = 5

// FeedIconService updates the icon url of every feed. A feed keeps its
// current url when no candidate can be verified, so a broken url is
// never persisted.
type FeedIconService struct {
	store      repository.SyncStore
	snooper    *favicon.Snooper
	httpClient *http.Client
	cacher     *HTTPCacher
	logger     *slog.Logger
	workers    int

	// Feeds hosted on the same site share one snoop.
	snoops singleflight.Group
}

// NewFeedIconService creates a feed icon resolver. cacher may be nil to
// skip cache priming.
func NewFeedIconService(store repository.SyncStore, snooper *favicon.Snooper, httpClient *http.Client, cacher *HTTPCacher, workers int, logger *slog.Logger) *FeedIconService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if workers <= 0 {
		workers = defaultIconWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedIconService{
		store:      store,
		snooper:    snooper,
		httpClient: httpClient,
		cacher:     cacher,
		logger:     logger,
		workers:    workers,
	}
}

// SyncFeedIcons resolves icons for all feeds concurrently. A feed whose
// resolution fails is logged and skipped; only context cancellation
// aborts the whole run.
func (s *FeedIconService) SyncFeedIcons(ctx context.Context) error {
	feeds, err := s.store.GetFeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to load feeds for icon sync: %w", err)
	}

	feedCh := make(chan models.Feed)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(feedCh)
		for _, feed := range feeds {
			select {
			case feedCh <- feed:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < s.workers; i++ {
		g.Go(func() error {
			for feed := range feedCh {
				if err := s.updateFeedIcon(gctx, feed); err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					s.logger.Warn("Unable to update feed icon",
						"feed_id", feed.ID, "feed_title", feed.EffectiveTitle(), "error", err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.primeIconCache(ctx)
	return nil
}

func (s *FeedIconService) updateFeedIcon(ctx context.Context, feed models.Feed) error {
	// An article link reflects the site better than the feed url,
	// which often points at a CDN or an aggregator.
	link := feed.URL
	article, err := s.store.GetLatestArticleForFeed(ctx, feed.ID)
	if err != nil {
		return err
	}
	if article != nil && article.Link != "" {
		link = article.Link
	}

	siteURL, err := utils.SiteRootURL(link)
	if err != nil {
		return fmt.Errorf("no usable site url for feed %d: %w", feed.ID, err)
	}

	candidates, err := s.findFavicons(ctx, siteURL)
	if err != nil {
		return err
	}

	selected := s.selectBestIcon(ctx, candidates)
	if selected == nil {
		// Keep whatever url the feed already has.
		return nil
	}
	return s.store.UpdateFeedIconURL(ctx, feed.ID, selected.URL)
}

func (s *FeedIconService) findFavicons(ctx context.Context, siteURL string) ([]favicon.Info, error) {
	v, err, _ := s.snoops.Do(siteURL, func() (interface{}, error) {
		return s.snooper.FindFavicons(ctx, siteURL)
	})
	if err != nil {
		return nil, err
	}
	return v.([]favicon.Info), nil
}

// selectBestIcon orders candidates by declared size and returns the
// first one that answers a HEAD request. Adaptive icons rank above any
// fixed size, undeclared sizes rank last.
func (s *FeedIconService) selectBestIcon(ctx context.Context, candidates []favicon.Info) *favicon.Info {
	sorted := make([]favicon.Info, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return iconScore(sorted[i]) > iconScore(sorted[j])
	})

	for i := range sorted {
		if s.iconReachable(ctx, sorted[i].URL) {
			return &sorted[i]
		}
	}
	return nil
}

func iconScore(info favicon.Info) int {
	switch d := info.Dimension.(type) {
	case favicon.Adaptive:
		return math.MaxInt
	case favicon.Fixed:
		return d.Area()
	default:
		return math.MinInt
	}
}

func (s *FeedIconService) iconReachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("Icon candidate unreachable", "url", url, "error", err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (s *FeedIconService) primeIconCache(ctx context.Context) {
	if s.cacher == nil {
		return
	}
	feeds, err := s.store.GetFeeds(ctx)
	if err != nil {
		s.logger.Warn("Unable to reload feeds for icon cache priming", "error", err)
		return
	}
	urls := make([]string, 0, len(feeds))
	for _, feed := range feeds {
		if feed.IconURL != "" {
			urls = append(urls, feed.IconURL)
		}
	}
	s.cacher.CacheImages(ctx, urls)
}
