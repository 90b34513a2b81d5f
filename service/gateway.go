// ABOUTME: Consumer-side contracts the sync services depend on
// ABOUTME: The Tiny Tiny RSS driver is the production implementation of the gateway

package service

import (
	"context"
	"io"

	"feed-sync/models"
)

// RemoteFeedGateway is the remote API surface the synchronizer needs.
// driver.TTRSSClient implements it.
type RemoteFeedGateway interface {
	GetServerInfo(ctx context.Context) (*models.ServerInfo, error)
	GetFeeds(ctx context.Context) ([]models.Feed, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetArticles(ctx context.Context, feedID, sinceID int64, offset int, showExcerpt, showContent bool) ([]*models.Article, error)
	GetArticlesOrderByDateReverse(ctx context.Context, feedID, sinceID int64, offset int, showExcerpt, showContent bool) ([]*models.Article, error)
	UpdateArticleField(ctx context.Context, articleID int64, field models.TransactionField, value bool) error
	SubscribeToFeed(ctx context.Context, feedURL string, categoryID int64, feedLogin, feedPassword string) (models.SubscribeResult, error)
	UnsubscribeFromFeed(ctx context.Context, feedID int64) (bool, error)
	GetFeedIcon(ctx context.Context, feedID int64) (io.ReadCloser, error)
}
