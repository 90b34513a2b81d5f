// ABOUTME: PostgreSQL implementation of the SyncStore contract on pgx
// ABOUTME: Transaction scoping rides on the context so nested calls share one tx

package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"feed-sync/models"
)

// DB is the subset of pgxpool.Pool the store needs. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type txContextKey struct{}

// PostgresSyncStore implements SyncStore using PostgreSQL.
type PostgresSyncStore struct {
	db     DB
	logger *slog.Logger
}

// NewPostgresSyncStore creates a new PostgreSQL-backed sync store.
func NewPostgresSyncStore(db DB, logger *slog.Logger) *PostgresSyncStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSyncStore{db: db, logger: logger}
}

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// q returns the transaction bound to ctx, or the pool.
func (s *PostgresSyncStore) q(ctx context.Context) querier {
	if tx, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.db
}

// RunInTransaction runs fn inside one database transaction. Store calls
// made with the ctx passed to fn join that transaction. Nested calls
// reuse the already open transaction.
func (s *PostgresSyncStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txContextKey{}, tx)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.logger.Error("Failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// InsertFeeds upserts feeds. The icon URL is intentionally left out of
// the update: it is owned by the icon sync stage.
func (s *PostgresSyncStore) InsertFeeds(ctx context.Context, feeds []models.Feed) error {
	query := `
		INSERT INTO feeds (
			id, cat_id, title, display_title, feed_url, unread_count,
			is_subscribed, last_time_update
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			cat_id = EXCLUDED.cat_id,
			title = EXCLUDED.title,
			display_title = EXCLUDED.display_title,
			feed_url = EXCLUDED.feed_url,
			unread_count = EXCLUDED.unread_count,
			is_subscribed = EXCLUDED.is_subscribed,
			last_time_update = EXCLUDED.last_time_update`

	for _, feed := range feeds {
		_, err := s.q(ctx).Exec(ctx, query,
			feed.ID,
			feed.CategoryID,
			feed.Title,
			feed.DisplayTitle,
			feed.URL,
			feed.UnreadCount,
			feed.IsSubscribed,
			feed.LastTimeUpdate,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert feed %d: %w", feed.ID, err)
		}
	}
	return nil
}

// DeleteFeedsAndArticles deletes the given feeds and every article that
// belongs to them. Callers wrap this in RunInTransaction to make the
// cascade atomic; pending transactions cascade with their articles.
func (s *PostgresSyncStore) DeleteFeedsAndArticles(ctx context.Context, feedIDs []int64) error {
	if len(feedIDs) == 0 {
		return nil
	}

	if _, err := s.q(ctx).Exec(ctx,
		`DELETE FROM articles WHERE feed_id = ANY($1)`, feedIDs); err != nil {
		return fmt.Errorf("failed to delete articles of removed feeds: %w", err)
	}
	if _, err := s.q(ctx).Exec(ctx,
		`DELETE FROM feeds WHERE id = ANY($1)`, feedIDs); err != nil {
		return fmt.Errorf("failed to delete feeds: %w", err)
	}

	s.logger.Info("Deleted feeds no longer present remotely", "count", len(feedIDs))
	return nil
}

// GetFeeds returns all known feeds.
func (s *PostgresSyncStore) GetFeeds(ctx context.Context) ([]models.Feed, error) {
	query := `
		SELECT id, cat_id, title, display_title, feed_url, unread_count,
		       is_subscribed, COALESCE(feed_icon_url, ''), last_time_update
		FROM feeds
		ORDER BY id`

	rows, err := s.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feeds: %w", err)
	}
	defer rows.Close()

	var feeds []models.Feed
	for rows.Next() {
		var f models.Feed
		if err := rows.Scan(&f.ID, &f.CategoryID, &f.Title, &f.DisplayTitle,
			&f.URL, &f.UnreadCount, &f.IsSubscribed, &f.IconURL, &f.LastTimeUpdate); err != nil {
			return nil, fmt.Errorf("failed to scan feed: %w", err)
		}
		feeds = append(feeds, f)
	}
	return feeds, rows.Err()
}

// UpdateFeedIconURL persists the resolved icon URL for a feed.
func (s *PostgresSyncStore) UpdateFeedIconURL(ctx context.Context, feedID int64, iconURL string) error {
	_, err := s.q(ctx).Exec(ctx,
		`UPDATE feeds SET feed_icon_url = $2 WHERE id = $1`, feedID, iconURL)
	if err != nil {
		return fmt.Errorf("failed to update icon url of feed %d: %w", feedID, err)
	}
	return nil
}

// InsertCategories upserts categories.
func (s *PostgresSyncStore) InsertCategories(ctx context.Context, categories []models.Category) error {
	query := `
		INSERT INTO categories (id, title, unread_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			unread_count = EXCLUDED.unread_count`

	for _, cat := range categories {
		if _, err := s.q(ctx).Exec(ctx, query, cat.ID, cat.Title, cat.UnreadCount); err != nil {
			return fmt.Errorf("failed to upsert category %d: %w", cat.ID, err)
		}
	}
	return nil
}

// DeleteCategories deletes categories by id.
func (s *PostgresSyncStore) DeleteCategories(ctx context.Context, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	if _, err := s.q(ctx).Exec(ctx,
		`DELETE FROM categories WHERE id = ANY($1)`, categoryIDs); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}
	return nil
}

// GetCategories returns all known categories.
func (s *PostgresSyncStore) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.q(ctx).Query(ctx,
		`SELECT id, title, unread_count FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.UnreadCount); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// AddTransaction appends a pending mutation to the queue. Called
// synchronously when the user flips a status flag, before the flag is
// propagated anywhere.
func (s *PostgresSyncStore) AddTransaction(ctx context.Context, txn *models.PendingTransaction) error {
	err := s.q(ctx).QueryRow(ctx, `
		INSERT INTO transactions (article_id, field, value)
		VALUES ($1, $2, $3)
		RETURNING id`,
		txn.ArticleID, txn.Field.String(), txn.Value,
	).Scan(&txn.ID)
	if err != nil {
		return fmt.Errorf("failed to append transaction for article %d: %w", txn.ArticleID, err)
	}
	return nil
}

// GetTransactions returns the pending mutation queue in append order.
func (s *PostgresSyncStore) GetTransactions(ctx context.Context) ([]models.PendingTransaction, error) {
	rows, err := s.q(ctx).Query(ctx,
		`SELECT id, article_id, field, value FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.PendingTransaction
	for rows.Next() {
		var txn models.PendingTransaction
		var field string
		if err := rows.Scan(&txn.ID, &txn.ArticleID, &field, &txn.Value); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Field, err = models.ParseTransactionField(field)
		if err != nil {
			return nil, fmt.Errorf("corrupt transaction %d: %w", txn.ID, err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// DeleteTransaction removes an acknowledged transaction from the queue.
func (s *PostgresSyncStore) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := s.q(ctx).Exec(ctx,
		`DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}

const articleColumns = `id, feed_id, title, content, content_excerpt, flavor_image_uri,
	author, link, tags, unread, transient_unread, marked, published,
	is_updated, score, last_time_update`

func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	err := row.Scan(&a.ID, &a.FeedID, &a.Title, &a.Content, &a.ContentExcerpt,
		&a.FlavorImageURI, &a.Author, &a.Link, &a.Tags, &a.IsUnread,
		&a.IsTransientUnread, &a.IsStarred, &a.IsPublished, &a.IsUpdated,
		&a.Score, &a.LastTimeUpdate)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetArticle returns one article, or nil when it does not exist.
func (s *PostgresSyncStore) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	row := s.q(ctx).QueryRow(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	article, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}
	return article, nil
}

// GetLatestArticleForFeed returns the newest article of a feed, or nil.
func (s *PostgresSyncStore) GetLatestArticleForFeed(ctx context.Context, feedID int64) (*models.Article, error) {
	row := s.q(ctx).QueryRow(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE feed_id = $1 ORDER BY id DESC LIMIT 1`, feedID)
	article, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest article of feed %d: %w", feedID, err)
	}
	return article, nil
}

// InsertArticles inserts new articles. Already-known article ids are
// left untouched, which makes re-collection a no-op. An article whose
// feed no longer exists locally is skipped: the metadata sync may have
// deleted the feed while a collection task was still paging.
func (s *PostgresSyncStore) InsertArticles(ctx context.Context, articles []*models.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		WHERE EXISTS (SELECT 1 FROM feeds WHERE id = $2)
		ON CONFLICT (id) DO NOTHING`

	for _, a := range articles {
		_, err := s.q(ctx).Exec(ctx, query,
			a.ID, a.FeedID, a.Title, a.Content, a.ContentExcerpt,
			a.FlavorImageURI, a.Author, a.Link, a.Tags, a.IsUnread,
			a.IsTransientUnread, a.IsStarred, a.IsPublished, a.IsUpdated,
			a.Score, a.LastTimeUpdate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert article %d: %w", a.ID, err)
		}
	}
	return nil
}

// UpdateArticle overwrites one article row.
func (s *PostgresSyncStore) UpdateArticle(ctx context.Context, a *models.Article) error {
	query := `
		UPDATE articles SET
			feed_id = $2, title = $3, content = $4, content_excerpt = $5,
			flavor_image_uri = $6, author = $7, link = $8, tags = $9,
			unread = $10, transient_unread = $11, marked = $12,
			published = $13, is_updated = $14, score = $15,
			last_time_update = $16
		WHERE id = $1`

	_, err := s.q(ctx).Exec(ctx, query,
		a.ID, a.FeedID, a.Title, a.Content, a.ContentExcerpt,
		a.FlavorImageURI, a.Author, a.Link, a.Tags, a.IsUnread,
		a.IsTransientUnread, a.IsStarred, a.IsPublished, a.IsUpdated,
		a.Score, a.LastTimeUpdate,
	)
	if err != nil {
		return fmt.Errorf("failed to update article %d: %w", a.ID, err)
	}
	return nil
}

// UpdateArticlesMetadata overwrites the status flags of the given
// articles without touching their content columns.
func (s *PostgresSyncStore) UpdateArticlesMetadata(ctx context.Context, metadata []models.ArticleMetadata) error {
	query := `
		UPDATE articles SET
			unread = $2, transient_unread = $3, marked = $4,
			published = $5, is_updated = $6, last_time_update = $7
		WHERE id = $1`

	for _, m := range metadata {
		_, err := s.q(ctx).Exec(ctx, query,
			m.ID, m.IsUnread, m.IsTransientUnread, m.IsStarred,
			m.IsPublished, m.IsUpdated, m.LastTimeUpdate,
		)
		if err != nil {
			return fmt.Errorf("failed to update metadata of article %d: %w", m.ID, err)
		}
	}
	return nil
}

// GetLatestArticleID returns the highest known article id, 0 when the
// store is empty.
func (s *PostgresSyncStore) GetLatestArticleID(ctx context.Context) (int64, error) {
	var id int64
	err := s.q(ctx).QueryRow(ctx,
		`SELECT COALESCE(MAX(id), 0) FROM articles`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest article id: %w", err)
	}
	return id, nil
}

// GetLatestArticleIDForFeed returns the highest article id of one feed.
func (s *PostgresSyncStore) GetLatestArticleIDForFeed(ctx context.Context, feedID int64) (int64, error) {
	var id int64
	err := s.q(ctx).QueryRow(ctx,
		`SELECT COALESCE(MAX(id), 0) FROM articles WHERE feed_id = $1`, feedID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest article id of feed %d: %w", feedID, err)
	}
	return id, nil
}

// DeleteStaleArticles purges articles that are read, unstarred and
// unpublished and were last updated at or before the given epoch second.
func (s *PostgresSyncStore) DeleteStaleArticles(ctx context.Context, beforeEpoch int64) (int64, error) {
	tag, err := s.q(ctx).Exec(ctx, `
		DELETE FROM articles
		WHERE unread = false AND marked = false AND published = false
		  AND last_time_update <= $1`, beforeEpoch)
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale articles: %w", err)
	}
	return tag.RowsAffected(), nil
}
