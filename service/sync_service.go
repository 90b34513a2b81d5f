// ABOUTME: ArticleSynchronizer drives one full sync pass as a staged task graph
// ABOUTME: Transaction flush is always ordered before the status refresh stage

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"feed-sync/models"
	"feed-sync/repository"
	"feed-sync/service/scheduler"
	"feed-sync/utils"
)

const (
	// AllFeedsID mirrors the server's virtual all-articles feed id.
	AllFeedsID int64 = -4

	// Above this id gap the pass switches to gradual collection, which
	// commits after every page instead of holding one big transaction.
	gradualSyncThreshold = 1000

	defaultMaxArticlesToRefresh = 500
)

// SyncParams configures one synchronization pass.
type SyncParams struct {
	// MaxArticlesToRefresh bounds the per-feed status refresh. Negative
	// means no bound.
	MaxArticlesToRefresh int
	// UpdateFeedIcons is recorded for callers but not honored: icon
	// sync runs on every pass so a new feed never stays iconless.
	UpdateFeedIcons bool
	// FeedID scopes the status refresh stage. AllFeedsID refreshes
	// every feed.
	FeedID int64
}

// DefaultSyncParams returns the parameters of an unscoped pass.
func DefaultSyncParams() SyncParams {
	return SyncParams{
		MaxArticlesToRefresh: defaultMaxArticlesToRefresh,
		UpdateFeedIcons:      true,
		FeedID:               AllFeedsID,
	}
}

// StageResult records the terminal state of one stage task.
type StageResult struct {
	Name  string
	State scheduler.TaskState
	Err   error
}

// SyncResult summarizes a finished pass. A pass with failed stages is
// incomplete, not fatal; the next trigger retries from committed state.
type SyncResult struct {
	PassID string
	Stages []StageResult
}

// Failed returns the stages that ended in failure.
func (r *SyncResult) Failed() []StageResult {
	var failed []StageResult
	for _, s := range r.Stages {
		if s.State == scheduler.TaskFailed {
			failed = append(failed, s)
		}
	}
	return failed
}

// Succeeded reports whether every stage of the pass succeeded.
func (r *SyncResult) Succeeded() bool {
	for _, s := range r.Stages {
		if s.State != scheduler.TaskSucceeded {
			return false
		}
	}
	return true
}

// ArticleSynchronizer runs synchronization passes. It holds no durable
// state of its own; everything lives behind the store.
type ArticleSynchronizer struct {
	gateway     RemoteFeedGateway
	store       repository.SyncStore
	augmenter   *ArticleAugmenter
	iconService *FeedIconService
	cacher      *HTTPCacher
	runner      *scheduler.TaskGraphRunner
	logger      *slog.Logger
}

// NewArticleSynchronizer creates a synchronizer. iconService and cacher
// may be nil; the corresponding enrichment is then skipped.
func NewArticleSynchronizer(
	gateway RemoteFeedGateway,
	store repository.SyncStore,
	augmenter *ArticleAugmenter,
	iconService *FeedIconService,
	cacher *HTTPCacher,
	runner *scheduler.TaskGraphRunner,
	logger *slog.Logger,
) *ArticleSynchronizer {
	if augmenter == nil {
		augmenter = NewArticleAugmenter()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleSynchronizer{
		gateway:     gateway,
		store:       store,
		augmenter:   augmenter,
		iconService: iconService,
		cacher:      cacher,
		runner:      runner,
		logger:      logger,
	}
}

type stageHandle struct {
	name   string
	handle *scheduler.TaskHandle
}

// Sync runs one pass. Stage failures are collected in the result, not
// returned; the only error is context cancellation while awaiting.
func (s *ArticleSynchronizer) Sync(ctx context.Context, params SyncParams) (*SyncResult, error) {
	passID := uuid.NewString()
	passTag := "sync-pass-" + passID
	s.logger.Info("Starting sync pass",
		"pass_id", passID,
		"max_articles_to_refresh", params.MaxArticlesToRefresh,
		"feed_scope", params.FeedID)

	var stages []stageHandle
	track := func(name string, h *scheduler.TaskHandle) *scheduler.TaskHandle {
		stages = append(stages, stageHandle{name: name, handle: h})
		return h
	}

	syncFeeds := track("sync-feeds", s.runner.Submit(ctx, scheduler.TaskSpec{
		Name:       "sync-feeds",
		UniqueName: "sync-feeds",
		Tags:       []string{passTag},
		Run:        s.syncFeedsAndCategories,
	}))
	sendTransactions := track("send-transactions", s.runner.Submit(ctx, scheduler.TaskSpec{
		Name:       "send-transactions",
		UniqueName: "send-transactions",
		Tags:       []string{passTag},
		Run:        s.flushTransactions,
	}))

	prerequisites := []*scheduler.TaskHandle{syncFeeds, sendTransactions}
	if s.iconService != nil {
		syncIcons := track("sync-feed-icons", s.runner.Submit(ctx, scheduler.TaskSpec{
			Name:       "sync-feed-icons",
			UniqueName: "sync-feed-icons",
			Tags:       []string{passTag},
			DependsOn:  []*scheduler.TaskHandle{syncFeeds},
			Run:        s.iconService.SyncFeedIcons,
		}))
		prerequisites = append(prerequisites, syncIcons)
	}

	if _, err := s.runner.AwaitAllTerminal(ctx, passTag); err != nil {
		s.runner.Cancel(passTag)
		return nil, err
	}

	if syncFeeds.State() != scheduler.TaskSucceeded {
		s.logger.Warn("Feed metadata sync did not succeed, skipping article stages",
			"pass_id", passID, "state", syncFeeds.State())
		return s.buildResult(passID, stages), nil
	}

	feeds, err := s.store.GetFeeds(ctx)
	if err != nil {
		s.logger.Error("Unable to list feeds for article stages", "pass_id", passID, "error", err)
		return s.buildResult(passID, stages), nil
	}

	for _, feed := range feeds {
		collect := track(fmt.Sprintf("collect-articles-%d", feed.ID), s.runner.Submit(ctx, scheduler.TaskSpec{
			Name:       "collect-articles",
			UniqueName: fmt.Sprintf("collect-articles-%d", feed.ID),
			Tags:       []string{passTag},
			DependsOn:  prerequisites,
			Run: func(taskCtx context.Context) error {
				return s.collectFeedArticles(taskCtx, feed)
			},
		}))

		if params.FeedID != AllFeedsID && params.FeedID != feed.ID {
			continue
		}
		track(fmt.Sprintf("update-status-%d", feed.ID), s.runner.Submit(ctx, scheduler.TaskSpec{
			Name:       "update-status",
			UniqueName: fmt.Sprintf("update-status-%d", feed.ID),
			Tags:       []string{passTag},
			DependsOn:  []*scheduler.TaskHandle{sendTransactions, collect},
			Run: func(taskCtx context.Context) error {
				return s.refreshFeedStatus(taskCtx, feed.ID, params.MaxArticlesToRefresh)
			},
		}))
	}

	if _, err := s.runner.AwaitAllTerminal(ctx, passTag); err != nil {
		s.runner.Cancel(passTag)
		return nil, err
	}
	s.runner.Prune()

	result := s.buildResult(passID, stages)
	s.logger.Info("Sync pass finished",
		"pass_id", passID,
		"stages", len(result.Stages),
		"failed_stages", len(result.Failed()))
	return result, nil
}

func (s *ArticleSynchronizer) buildResult(passID string, stages []stageHandle) *SyncResult {
	result := &SyncResult{PassID: passID}
	for _, st := range stages {
		result.Stages = append(result.Stages, StageResult{
			Name:  st.name,
			State: st.handle.State(),
			Err:   st.handle.Err(),
		})
	}
	return result
}

// syncFeedsAndCategories reconciles the local feed and category tables
// with the server. Feeds that disappeared remotely are removed together
// with their articles in one transaction.
func (s *ArticleSynchronizer) syncFeedsAndCategories(ctx context.Context) error {
	info, err := s.gateway.GetServerInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to read server info: %w", err)
	}
	s.logger.Info("Server info", "api_level", info.APILevel, "version", info.Version)

	categories, err := s.gateway.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}
	// Virtual categories (Special, Labels) are server-side views, not
	// subscriptions; they never enter the local table.
	var persisted []models.Category
	for _, category := range categories {
		if !category.IsVirtual() {
			persisted = append(persisted, category)
		}
	}

	feeds, err := s.gateway.GetFeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch feeds: %w", err)
	}

	return s.store.RunInTransaction(ctx, func(txCtx context.Context) error {
		localFeeds, err := s.store.GetFeeds(txCtx)
		if err != nil {
			return err
		}
		if err := s.store.InsertFeeds(txCtx, feeds); err != nil {
			return err
		}
		if removed := missingIDs(feedIDs(localFeeds), feedIDs(feeds)); len(removed) > 0 {
			if err := s.store.DeleteFeedsAndArticles(txCtx, removed); err != nil {
				return err
			}
		}

		localCategories, err := s.store.GetCategories(txCtx)
		if err != nil {
			return err
		}
		if err := s.store.InsertCategories(txCtx, persisted); err != nil {
			return err
		}
		if removed := missingIDs(categoryIDs(localCategories), categoryIDs(persisted)); len(removed) > 0 {
			if err := s.store.DeleteCategories(txCtx, removed); err != nil {
				return err
			}
		}
		return nil
	})
}

func feedIDs(feeds []models.Feed) []int64 {
	ids := make([]int64, len(feeds))
	for i, f := range feeds {
		ids[i] = f.ID
	}
	return ids
}

func categoryIDs(categories []models.Category) []int64 {
	ids := make([]int64, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}

func missingIDs(local, remote []int64) []int64 {
	known := make(map[int64]struct{}, len(remote))
	for _, id := range remote {
		known[id] = struct{}{}
	}
	var missing []int64
	for _, id := range local {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// flushTransactions pushes every pending mutation to the server. The
// flag is applied to the local article first; the transaction row is
// deleted only once the remote call succeeded, so a failed push is
// retried on the next pass. Per-transaction failures are non-fatal.
func (s *ArticleSynchronizer) flushTransactions(ctx context.Context) error {
	txns, err := s.store.GetTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pending transactions: %w", err)
	}
	if len(txns) == 0 {
		return nil
	}
	s.logger.Info("Flushing pending transactions", "count", len(txns))

	for _, txn := range txns {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.flushTransaction(ctx, txn); err != nil {
			s.logger.Warn("Transaction push failed, keeping for next pass",
				"transaction_id", txn.ID, "article_id", txn.ArticleID,
				"field", txn.Field.String(), "error", err)
		}
	}
	return nil
}

func (s *ArticleSynchronizer) flushTransaction(ctx context.Context, txn models.PendingTransaction) error {
	article, err := s.store.GetArticle(ctx, txn.ArticleID)
	if err != nil {
		return err
	}
	if article == nil {
		// The article was purged; the intent is moot.
		return s.store.DeleteTransaction(ctx, txn.ID)
	}

	switch txn.Field {
	case models.TransactionFieldStarred:
		article.IsStarred = txn.Value
	case models.TransactionFieldPublished:
		article.IsPublished = txn.Value
	case models.TransactionFieldUnread:
		article.IsUnread = txn.Value
		article.IsTransientUnread = txn.Value
	}
	if err := s.store.UpdateArticle(ctx, article); err != nil {
		return err
	}

	if err := s.gateway.UpdateArticleField(ctx, txn.ArticleID, txn.Field, txn.Value); err != nil {
		return err
	}
	return s.store.DeleteTransaction(ctx, txn.ID)
}

// collectFeedArticles pulls articles newer than the local high-water
// mark for one feed. When the gap is large the gradual path commits per
// page; otherwise everything lands in one transaction.
func (s *ArticleSynchronizer) collectFeedArticles(ctx context.Context, feed models.Feed) error {
	latestID, err := s.store.GetLatestArticleIDForFeed(ctx, feed.ID)
	if err != nil {
		return fmt.Errorf("failed to read high-water mark of feed %d: %w", feed.ID, err)
	}

	probe, err := s.getArticles(ctx, feed.ID, latestID, 0, false)
	if err != nil {
		return err
	}
	if len(probe) == 0 {
		return nil
	}

	if maxArticleID(probe)-latestID > gradualSyncThreshold {
		s.logger.Info("Collecting new articles gradually", "feed_id", feed.ID)
		return s.collectGradually(ctx, feed.ID, latestID)
	}
	s.logger.Info("Collecting new articles fully", "feed_id", feed.ID)
	return s.collectFully(ctx, feed.ID, latestID, probe)
}

func (s *ArticleSynchronizer) collectFully(ctx context.Context, feedID, latestID int64, firstPage []*models.Article) error {
	var fetched [][]*models.Article
	err := s.store.RunInTransaction(ctx, func(txCtx context.Context) error {
		page := firstPage
		offset := 0
		for len(page) > 0 {
			if err := s.store.InsertArticles(txCtx, page); err != nil {
				return err
			}
			fetched = append(fetched, page)
			offset += len(page)

			var err error
			page, err = s.getArticles(txCtx, feedID, latestID, offset, false)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, page := range fetched {
		s.cacheUnreadArticleImages(ctx, page)
	}
	return nil
}

// collectGradually pages oldest-first so the per-feed high-water mark
// stays truthful after every committed page.
func (s *ArticleSynchronizer) collectGradually(ctx context.Context, feedID, latestID int64) error {
	offset := 0
	for {
		page, err := s.getArticles(ctx, feedID, latestID, offset, true)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}

		err = s.store.RunInTransaction(ctx, func(txCtx context.Context) error {
			return s.store.InsertArticles(txCtx, page)
		})
		if err != nil {
			return err
		}

		s.cacheUnreadArticleImages(ctx, page)
		offset += len(page)
	}
}

func (s *ArticleSynchronizer) getArticles(ctx context.Context, feedID, sinceID int64, offset int, oldestFirst bool) ([]*models.Article, error) {
	var articles []*models.Article
	var err error
	if oldestFirst {
		articles, err = s.gateway.GetArticlesOrderByDateReverse(ctx, feedID, sinceID, offset, true, true)
	} else {
		articles, err = s.gateway.GetArticles(ctx, feedID, sinceID, offset, true, true)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles of feed %d: %w", feedID, err)
	}

	for _, article := range articles {
		s.augmenter.Augment(article)
	}
	return articles, nil
}

func (s *ArticleSynchronizer) cacheUnreadArticleImages(ctx context.Context, articles []*models.Article) {
	if s.cacher == nil {
		return
	}
	var urls []string
	for _, article := range articles {
		if !article.IsUnread {
			continue
		}
		urls = append(urls, utils.ExtractImageURLs(article.Content)...)
		if article.FlavorImageURI != "" {
			urls = append(urls, article.FlavorImageURI)
		}
	}
	s.cacher.CacheImages(ctx, urls)
}

// refreshFeedStatus re-fetches the newest articles of one feed in pages
// and overwrites their local status flags with the server's view. The
// server wins here: client intent was already flushed in the
// send-transactions stage, which this stage is ordered after.
func (s *ArticleSynchronizer) refreshFeedStatus(ctx context.Context, feedID int64, maxArticles int) error {
	offset := 0
	for {
		if maxArticles >= 0 && offset >= maxArticles {
			return nil
		}
		articles, err := s.gateway.GetArticles(ctx, feedID, 0, offset, false, false)
		if err != nil {
			return fmt.Errorf("failed to refresh status of feed %d: %w", feedID, err)
		}
		if len(articles) == 0 {
			return nil
		}

		metadata := make([]models.ArticleMetadata, 0, len(articles))
		for _, article := range articles {
			metadata = append(metadata, models.MetadataFromArticle(article))
		}
		if err := s.store.UpdateArticlesMetadata(ctx, metadata); err != nil {
			return err
		}
		offset += len(articles)
	}
}

func maxArticleID(articles []*models.Article) int64 {
	var max int64
	for _, a := range articles {
		if a.ID > max {
			max = a.ID
		}
	}
	return max
}
