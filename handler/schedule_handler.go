// ABOUTME: Periodic scheduling of sync passes and the daily purge
// ABOUTME: Sync cadence backs off exponentially while the server keeps failing

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"feed-sync/service"
)

// Synchronizer runs one synchronization pass.
type Synchronizer interface {
	Sync(ctx context.Context, params service.SyncParams) (*service.SyncResult, error)
}

// Purger deletes old articles.
type Purger interface {
	PurgeOldArticles(ctx context.Context) (int64, error)
}

// ScheduleConfig represents scheduling configuration.
type ScheduleConfig struct {
	SyncInterval         time.Duration `json:"sync_interval"`
	PurgeInterval        time.Duration `json:"purge_interval"`
	MaxArticlesToRefresh int           `json:"max_articles_to_refresh"`
	EnablePurge          bool          `json:"enable_purge"`
}

// DefaultScheduleConfig returns the default cadence.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		SyncInterval:         30 * time.Minute,
		PurgeInterval:        24 * time.Hour,
		MaxArticlesToRefresh: 500,
		EnablePurge:          true,
	}
}

// RateLimitAwareScheduler computes the next sync interval with
// exponential backoff on consecutive failures.
type RateLimitAwareScheduler struct {
	baseInterval      time.Duration
	currentInterval   time.Duration
	errorCount        int
	lastSuccessTime   time.Time
	backoffMultiplier float64
	maxInterval       time.Duration
	mu                sync.Mutex
}

// NewRateLimitAwareScheduler creates a backoff scheduler.
func NewRateLimitAwareScheduler(baseInterval time.Duration) *RateLimitAwareScheduler {
	return &RateLimitAwareScheduler{
		baseInterval:      baseInterval,
		currentInterval:   baseInterval,
		backoffMultiplier: 1.5,
		maxInterval:       6 * time.Hour,
	}
}

// NextInterval calculates the next execution interval.
func (s *RateLimitAwareScheduler) NextInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.errorCount == 0 {
		s.currentInterval = s.baseInterval
		return s.currentInterval
	}

	backoff := time.Duration(
		float64(s.baseInterval) * math.Pow(s.backoffMultiplier, float64(s.errorCount)),
	)
	if backoff > s.maxInterval {
		backoff = s.maxInterval
	}
	s.currentInterval = backoff
	return s.currentInterval
}

// RecordSuccess resets the backoff.
func (s *RateLimitAwareScheduler) RecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCount = 0
	s.lastSuccessTime = time.Now()
	s.currentInterval = s.baseInterval
}

// RecordError increments the consecutive error count.
func (s *RateLimitAwareScheduler) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCount++
}

// GetStatus returns error count, current interval and last success time.
func (s *RateLimitAwareScheduler) GetStatus() (int, time.Duration, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorCount, s.currentInterval, s.lastSuccessTime
}

// ScheduleStatus represents current scheduling status.
type ScheduleStatus struct {
	SyncRunning    bool      `json:"sync_running"`
	PurgeRunning   bool      `json:"purge_running"`
	LastSync       time.Time `json:"last_sync"`
	NextSync       time.Time `json:"next_sync"`
	LastSyncPass   string    `json:"last_sync_pass,omitempty"`
	LastPurge      time.Time `json:"last_purge"`
	TotalSyncs     int64     `json:"total_syncs"`
	FailedSyncs    int64     `json:"failed_syncs"`
	TotalPurges    int64     `json:"total_purges"`
	FailedPurges   int64     `json:"failed_purges"`
	PurgedArticles int64     `json:"purged_articles"`
	LastError      string    `json:"last_error,omitempty"`
}

// JobResult represents the result of one scheduled job.
type JobResult struct {
	JobType   string        `json:"job_type"` // "sync", "feed_refresh" or "purge"
	Success   bool          `json:"success"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
	Details   interface{}   `json:"details,omitempty"`
}

// ScheduleHandler drives periodic sync passes and the daily purge.
type ScheduleHandler struct {
	config       ScheduleConfig
	synchronizer Synchronizer
	purger       Purger
	status       ScheduleStatus
	logger       *slog.Logger

	syncScheduler *RateLimitAwareScheduler
	purgeTicker   *time.Ticker

	ctx                context.Context
	cancel             context.CancelFunc
	mu                 sync.RWMutex
	jobResultCallbacks []func(*JobResult)
}

// NewScheduleHandler creates a schedule handler. purger may be nil to
// disable purging.
func NewScheduleHandler(synchronizer Synchronizer, purger Purger, config ScheduleConfig, logger *slog.Logger) *ScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if config.SyncInterval <= 0 {
		config.SyncInterval = DefaultScheduleConfig().SyncInterval
	}
	if config.PurgeInterval <= 0 {
		config.PurgeInterval = DefaultScheduleConfig().PurgeInterval
	}
	return &ScheduleHandler{
		config:        config,
		synchronizer:  synchronizer,
		purger:        purger,
		logger:        logger,
		syncScheduler: NewRateLimitAwareScheduler(config.SyncInterval),
	}
}

// Start starts the scheduling loops.
func (h *ScheduleHandler) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctx != nil {
		return fmt.Errorf("schedule handler already running")
	}
	h.ctx, h.cancel = context.WithCancel(ctx)

	h.logger.Info("Starting schedule processing",
		"sync_interval", h.config.SyncInterval,
		"purge_interval", h.config.PurgeInterval,
		"purge_enabled", h.config.EnablePurge && h.purger != nil)

	go h.runSyncLoop()

	if h.config.EnablePurge && h.purger != nil {
		h.purgeTicker = time.NewTicker(h.config.PurgeInterval)
		go h.runPurgeLoop()
	}
	return nil
}

// Stop stops the scheduling loops.
func (h *ScheduleHandler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancel != nil {
		h.cancel()
	}
	// The ticker stays non-nil so runPurgeLoop can still select on its
	// channel while draining after the cancel.
	if h.purgeTicker != nil {
		h.purgeTicker.Stop()
	}
	h.logger.Info("Schedule processing stopped")
}

// IsRunning reports whether the scheduler loops are active.
func (h *ScheduleHandler) IsRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ctx != nil && h.ctx.Err() == nil
}

func (h *ScheduleHandler) runSyncLoop() {
	timer := time.NewTimer(h.syncScheduler.NextInterval())
	defer timer.Stop()

	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info("Sync scheduler stopped")
			return
		case <-timer.C:
			h.executeSync(h.defaultParams())
			next := h.syncScheduler.NextInterval()
			errorCount, _, lastSuccess := h.syncScheduler.GetStatus()
			h.logger.Debug("Rescheduling sync pass",
				"next_interval", next,
				"error_count", errorCount,
				"last_success", lastSuccess)
			timer.Reset(next)
		}
	}
}

func (h *ScheduleHandler) runPurgeLoop() {
	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info("Purge scheduler stopped")
			return
		case <-h.purgeTicker.C:
			h.executePurge()
		}
	}
}

func (h *ScheduleHandler) defaultParams() service.SyncParams {
	params := service.DefaultSyncParams()
	if h.config.MaxArticlesToRefresh != 0 {
		params.MaxArticlesToRefresh = h.config.MaxArticlesToRefresh
	}
	return params
}

// TriggerSync triggers an immediate full sync pass.
func (h *ScheduleHandler) TriggerSync() error {
	h.mu.RLock()
	running := h.status.SyncRunning
	h.mu.RUnlock()
	if running {
		return fmt.Errorf("sync already running")
	}

	h.logger.Info("Manual sync triggered")
	go h.executeSync(h.defaultParams())
	return nil
}

// TriggerFeedRefresh triggers a pass scoped to one feed. Concurrent
// refreshes of the same feed collapse onto one task via the runner's
// unique work names.
func (h *ScheduleHandler) TriggerFeedRefresh(feedID int64) error {
	if feedID <= 0 {
		return fmt.Errorf("invalid feed id %d", feedID)
	}

	h.logger.Info("Manual feed refresh triggered", "feed_id", feedID)
	params := h.defaultParams()
	params.FeedID = feedID
	go h.executeSync(params)
	return nil
}

// TriggerPurge triggers an immediate purge.
func (h *ScheduleHandler) TriggerPurge() error {
	if h.purger == nil {
		return fmt.Errorf("purge not configured")
	}
	h.mu.RLock()
	running := h.status.PurgeRunning
	h.mu.RUnlock()
	if running {
		return fmt.Errorf("purge already running")
	}

	h.logger.Info("Manual purge triggered")
	go h.executePurge()
	return nil
}

func (h *ScheduleHandler) executeSync(params service.SyncParams) {
	h.mu.Lock()
	if h.status.SyncRunning {
		h.mu.Unlock()
		h.logger.Warn("Sync already running, skipping")
		return
	}
	h.status.SyncRunning = true
	h.status.TotalSyncs++
	h.mu.Unlock()

	jobType := "sync"
	if params.FeedID != service.AllFeedsID {
		jobType = "feed_refresh"
	}
	startTime := time.Now()
	result := &JobResult{JobType: jobType, StartTime: startTime}

	ctx, cancel := context.WithTimeout(h.baseContext(), 30*time.Minute)
	defer cancel()

	syncResult, err := h.synchronizer.Sync(ctx, params)
	if err == nil && !syncResult.Succeeded() {
		err = fmt.Errorf("pass %s finished with %d failed stages", syncResult.PassID, len(syncResult.Failed()))
	}

	endTime := time.Now()
	result.EndTime = endTime
	result.Duration = endTime.Sub(startTime)
	result.Success = err == nil
	result.Details = syncResult

	h.mu.Lock()
	h.status.SyncRunning = false
	h.status.LastSync = endTime
	if syncResult != nil {
		h.status.LastSyncPass = syncResult.PassID
	}
	if err != nil {
		result.Error = err.Error()
		h.status.FailedSyncs++
		h.status.LastError = err.Error()

		h.syncScheduler.RecordError()
		next := h.syncScheduler.NextInterval()
		h.status.NextSync = endTime.Add(next)
		errorCount, _, lastSuccess := h.syncScheduler.GetStatus()
		h.logger.Error("Scheduled sync failed, backing off",
			"duration", result.Duration,
			"error", err,
			"consecutive_errors", errorCount,
			"next_interval", next,
			"last_success", lastSuccess)
	} else {
		h.syncScheduler.RecordSuccess()
		h.status.NextSync = endTime.Add(h.config.SyncInterval)
		h.logger.Info("Scheduled sync completed",
			"duration", result.Duration,
			"pass_id", syncResult.PassID,
			"next_sync", h.status.NextSync)
	}
	h.mu.Unlock()

	h.notifyJobResult(result)
}

func (h *ScheduleHandler) executePurge() {
	h.mu.Lock()
	if h.status.PurgeRunning {
		h.mu.Unlock()
		h.logger.Warn("Purge already running, skipping")
		return
	}
	h.status.PurgeRunning = true
	h.status.TotalPurges++
	h.mu.Unlock()

	startTime := time.Now()
	result := &JobResult{JobType: "purge", StartTime: startTime}

	ctx, cancel := context.WithTimeout(h.baseContext(), 10*time.Minute)
	defer cancel()

	purged, err := h.purger.PurgeOldArticles(ctx)

	endTime := time.Now()
	result.EndTime = endTime
	result.Duration = endTime.Sub(startTime)
	result.Success = err == nil
	result.Details = map[string]int64{"purged": purged}

	h.mu.Lock()
	h.status.PurgeRunning = false
	h.status.LastPurge = endTime
	if err != nil {
		result.Error = err.Error()
		h.status.FailedPurges++
		h.status.LastError = err.Error()
		h.logger.Error("Scheduled purge failed", "duration", result.Duration, "error", err)
	} else {
		h.status.PurgedArticles += purged
		h.logger.Info("Scheduled purge completed", "duration", result.Duration, "purged", purged)
	}
	h.mu.Unlock()

	h.notifyJobResult(result)
}

// baseContext returns the handler context, or Background for manual
// triggers before Start.
func (h *ScheduleHandler) baseContext() context.Context {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.ctx != nil {
		return h.ctx
	}
	return context.Background()
}

// GetStatus returns a copy of the current scheduling status.
func (h *ScheduleHandler) GetStatus() ScheduleStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// GetConfig returns a copy of the scheduling configuration.
func (h *ScheduleHandler) GetConfig() ScheduleConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.config
}

// AddJobResultCallback adds a callback invoked after every job.
func (h *ScheduleHandler) AddJobResultCallback(callback func(*JobResult)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.jobResultCallbacks = append(h.jobResultCallbacks, callback)
}

func (h *ScheduleHandler) notifyJobResult(result *JobResult) {
	h.mu.RLock()
	callbacks := make([]func(*JobResult), len(h.jobResultCallbacks))
	copy(callbacks, h.jobResultCallbacks)
	h.mu.RUnlock()

	for _, callback := range callbacks {
		go callback(result)
	}
}
