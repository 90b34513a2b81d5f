// ABOUTME: Tests for the article purge service
// ABOUTME: Verifies the age cutoff computation and error propagation

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feed-sync/mocks"
)

func TestPurgeService_UsesRetentionCutoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSyncStore(ctrl)

	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewPurgeService(store, 0, nil)
	svc.now = func() time.Time { return frozen }

	wantCutoff := frozen.Add(-DefaultPurgeRetention).Unix()
	store.EXPECT().DeleteStaleArticles(gomock.Any(), wantCutoff).Return(int64(4), nil)

	purged, err := svc.PurgeOldArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), purged)
}

func TestPurgeService_CustomRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSyncStore(ctrl)

	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewPurgeService(store, 7*24*time.Hour, nil)
	svc.now = func() time.Time { return frozen }

	store.EXPECT().
		DeleteStaleArticles(gomock.Any(), frozen.Add(-7*24*time.Hour).Unix()).
		Return(int64(0), nil)

	purged, err := svc.PurgeOldArticles(context.Background())
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestPurgeService_PropagatesStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSyncStore(ctrl)

	store.EXPECT().DeleteStaleArticles(gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("db down"))

	svc := NewPurgeService(store, time.Hour, nil)
	_, err := svc.PurgeOldArticles(context.Background())
	require.ErrorContains(t, err, "db down")
}
