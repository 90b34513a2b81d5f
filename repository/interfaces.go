// ABOUTME: Store contracts consumed by the synchronization pipeline
// ABOUTME: All durable state lives behind SyncStore; callers never touch SQL

package repository

import (
	"context"

	"feed-sync/models"
)

// SyncStore is the local persistence contract of the sync engine. It
// exclusively owns the feed, category, article and pending-transaction
// rows; the synchronizer only ever observes or mutates them through it.
//
// RunInTransaction scopes every store call made inside fn to one
// database transaction. Latest-article-id reads made outside a
// transaction reflect only committed data.
type SyncStore interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Feeds
	InsertFeeds(ctx context.Context, feeds []models.Feed) error
	DeleteFeedsAndArticles(ctx context.Context, feedIDs []int64) error
	GetFeeds(ctx context.Context) ([]models.Feed, error)
	UpdateFeedIconURL(ctx context.Context, feedID int64, iconURL string) error

	// Categories
	InsertCategories(ctx context.Context, categories []models.Category) error
	DeleteCategories(ctx context.Context, categoryIDs []int64) error
	GetCategories(ctx context.Context) ([]models.Category, error)

	// Pending transaction queue. DeleteTransaction may only be called by
	// the push pipeline after the remote call applying it succeeded.
	AddTransaction(ctx context.Context, txn *models.PendingTransaction) error
	GetTransactions(ctx context.Context) ([]models.PendingTransaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	// Articles
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	GetLatestArticleForFeed(ctx context.Context, feedID int64) (*models.Article, error)
	InsertArticles(ctx context.Context, articles []*models.Article) error
	UpdateArticle(ctx context.Context, article *models.Article) error
	UpdateArticlesMetadata(ctx context.Context, metadata []models.ArticleMetadata) error
	GetLatestArticleID(ctx context.Context) (int64, error)
	GetLatestArticleIDForFeed(ctx context.Context, feedID int64) (int64, error)
	DeleteStaleArticles(ctx context.Context, beforeEpoch int64) (int64, error)
}
