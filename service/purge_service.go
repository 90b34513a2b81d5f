// ABOUTME: Age-based purge of articles nobody flagged to keep
// ABOUTME: Unread, starred or published articles are never purged

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feed-sync/repository"
)

// DefaultPurgeRetention is how long read, unflagged articles are kept.
const DefaultPurgeRetention = 90 * 24 * time.Hour

// PurgeService deletes old articles the user is done with. The status
// predicate lives in the store query; this service only owns the age
// cutoff.
type PurgeService struct {
	store     repository.SyncStore
	logger    *slog.Logger
	retention time.Duration
	now       func() time.Time
}

// NewPurgeService creates a purge service. A non-positive retention
// falls back to the default.
func NewPurgeService(store repository.SyncStore, retention time.Duration, logger *slog.Logger) *PurgeService {
	if retention <= 0 {
		retention = DefaultPurgeRetention
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PurgeService{
		store:     store,
		logger:    logger,
		retention: retention,
		now:       time.Now,
	}
}

// PurgeOldArticles deletes read, unstarred, unpublished articles whose
// last update is older than the retention window. It returns the
// number of deleted rows.
func (p *PurgeService) PurgeOldArticles(ctx context.Context) (int64, error) {
	cutoff := p.now().Add(-p.retention).Unix()
	purged, err := p.store.DeleteStaleArticles(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge failed: %w", err)
	}
	if purged > 0 {
		p.logger.Info("Purged old articles", "count", purged, "cutoff_epoch", cutoff)
	}
	return purged, nil
}
