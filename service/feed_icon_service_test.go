// ABOUTME: Tests for feed icon resolution and verification
// ABOUTME: A local site serves the page, icons and a broken candidate

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"feed-sync/favicon"
	"feed-sync/mocks"
	"feed-sync/models"
)

// iconTestSite declares a large icon that 404s on HEAD and a small one
// that exists. The resolver must fall through to the small one.
func iconTestSite(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><head>
				<link rel="icon" href="/big.png" sizes="192x192">
				<link rel="icon" href="/small.png" sizes="16x16">
			</head><body></body></html>`))
		case "/small.png", "/favicon.ico":
			w.Write([]byte("icon"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFeedIconService_PersistsFirstReachableCandidate(t *testing.T) {
	server := iconTestSite(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSyncStore(ctrl)

	iconURL := server.URL + "/small.png"
	feed := models.Feed{ID: 5, Title: "Example", URL: server.URL + "/rss"}
	store.EXPECT().GetFeeds(gomock.Any()).
		Return([]models.Feed{feed}, nil)
	store.EXPECT().GetLatestArticleForFeed(gomock.Any(), int64(5)).
		Return(&models.Article{ID: 1, Link: server.URL + "/posts/1"}, nil)
	store.EXPECT().UpdateFeedIconURL(gomock.Any(), int64(5), iconURL).
		Return(nil)
	// Cache priming reloads the feed list and warms the resolved icon.
	resolved := feed
	resolved.IconURL = iconURL
	store.EXPECT().GetFeeds(gomock.Any()).
		Return([]models.Feed{resolved}, nil)

	cache := newMemoryImageCache()
	cacher := NewHTTPCacher(server.Client(), cache, time.Hour, nil)
	svc := NewFeedIconService(store, favicon.NewSnooper(server.Client()), server.Client(), cacher, 2, nil)
	require.NoError(t, svc.SyncFeedIcons(context.Background()))

	require.Contains(t, cache.entries, iconURL)
}

func TestFeedIconService_KeepsCurrentURLWhenNothingReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockSyncStore(ctrl)

	feed := models.Feed{ID: 5, Title: "Example", URL: server.URL + "/rss", IconURL: "https://old.example/icon.png"}
	store.EXPECT().GetFeeds(gomock.Any()).
		Return([]models.Feed{feed}, nil)
	store.EXPECT().GetLatestArticleForFeed(gomock.Any(), int64(5)).
		Return(nil, nil)
	// No UpdateFeedIconURL expectation: a broken url must never be persisted.

	svc := NewFeedIconService(store, favicon.NewSnooper(server.Client()), server.Client(), nil, 2, nil)
	require.NoError(t, svc.SyncFeedIcons(context.Background()))
}

func TestFeedIconService_FeedFailureDoesNotAbortOthers(t *testing.T) {
	server := iconTestSite(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSyncStore(ctrl)

	broken := models.Feed{ID: 1, Title: "Broken", URL: "not a url"}
	good := models.Feed{ID: 2, Title: "Good", URL: server.URL + "/rss"}
	store.EXPECT().GetFeeds(gomock.Any()).
		Return([]models.Feed{broken, good}, nil)
	store.EXPECT().GetLatestArticleForFeed(gomock.Any(), int64(1)).
		Return(nil, nil)
	store.EXPECT().GetLatestArticleForFeed(gomock.Any(), int64(2)).
		Return(nil, nil)
	store.EXPECT().UpdateFeedIconURL(gomock.Any(), int64(2), server.URL+"/small.png").
		Return(nil)

	svc := NewFeedIconService(store, favicon.NewSnooper(server.Client()), server.Client(), nil, 1, nil)
	require.NoError(t, svc.SyncFeedIcons(context.Background()))
}

func TestIconScoreOrdering(t *testing.T) {
	adaptive := favicon.Info{URL: "a", Dimension: favicon.Adaptive{}}
	big := favicon.Info{URL: "b", Dimension: favicon.Fixed{Width: 192, Height: 192}}
	small := favicon.Info{URL: "c", Dimension: favicon.Fixed{Width: 16, Height: 16}}
	unknown := favicon.Info{URL: "d"}

	require.Greater(t, iconScore(adaptive), iconScore(big))
	require.Greater(t, iconScore(big), iconScore(small))
	require.Greater(t, iconScore(small), iconScore(unknown))
}
