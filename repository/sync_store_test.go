// ABOUTME: Tests for the PostgreSQL sync store using a mocked pgx pool
// ABOUTME: Covers upsert semantics, transaction scoping and the purge query

package repository

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"feed-sync/models"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *PostgresSyncStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresSyncStore(mock, nil)
}

func TestPostgresSyncStore_InsertFeeds_UpsertsWithoutIconURL(t *testing.T) {
	mock, store := newMockStore(t)

	feed := models.Feed{
		ID:             12,
		CategoryID:     3,
		Title:          "Example Feed",
		DisplayTitle:   "Example",
		URL:            "https://example.com/rss",
		UnreadCount:    7,
		IsSubscribed:   true,
		LastTimeUpdate: 1700000000,
	}

	mock.ExpectExec("INSERT INTO feeds").
		WithArgs(feed.ID, feed.CategoryID, feed.Title, feed.DisplayTitle,
			feed.URL, feed.UnreadCount, feed.IsSubscribed, feed.LastTimeUpdate).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.InsertFeeds(context.Background(), []models.Feed{feed}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_DeleteFeedsAndArticles(t *testing.T) {
	mock, store := newMockStore(t)

	ids := []int64{4, 9}
	mock.ExpectExec("DELETE FROM articles WHERE feed_id").
		WithArgs(ids).
		WillReturnResult(pgxmock.NewResult("DELETE", 31))
	mock.ExpectExec("DELETE FROM feeds WHERE id").
		WithArgs(ids).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	require.NoError(t, store.DeleteFeedsAndArticles(context.Background(), ids))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_DeleteFeedsAndArticles_EmptyIsNoop(t *testing.T) {
	mock, store := newMockStore(t)

	require.NoError(t, store.DeleteFeedsAndArticles(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_GetFeeds(t *testing.T) {
	mock, store := newMockStore(t)

	rows := pgxmock.NewRows([]string{
		"id", "cat_id", "title", "display_title", "feed_url",
		"unread_count", "is_subscribed", "feed_icon_url", "last_time_update",
	}).
		AddRow(int64(1), int64(0), "News", "", "https://news.example/rss",
			3, true, "https://news.example/favicon.ico", int64(1700000000)).
		AddRow(int64(2), int64(5), "Blog", "My Blog", "https://blog.example/atom",
			0, true, "", int64(1700000100))

	mock.ExpectQuery("SELECT id, cat_id, title").WillReturnRows(rows)

	feeds, err := store.GetFeeds(context.Background())
	require.NoError(t, err)
	require.Len(t, feeds, 2)
	require.Equal(t, "https://news.example/favicon.ico", feeds[0].IconURL)
	require.Equal(t, "My Blog", feeds[1].DisplayTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_RunInTransaction_CommitsOnSuccess(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE feeds SET feed_icon_url").
		WithArgs(int64(7), "https://example.com/icon.png").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return store.UpdateFeedIconURL(ctx, 7, "https://example.com/icon.png")
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_RunInTransaction_RollsBackOnError(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("stage failed")
	err := store.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_RunInTransaction_NestedReusesOuter(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM transactions WHERE id").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return store.RunInTransaction(ctx, func(ctx context.Context) error {
			return store.DeleteTransaction(ctx, 42)
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_AddTransaction_AssignsID(t *testing.T) {
	mock, store := newMockStore(t)

	txn := &models.PendingTransaction{
		ArticleID: 99,
		Field:     models.TransactionFieldUnread,
		Value:     false,
	}

	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(txn.ArticleID, txn.Field.String(), txn.Value).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(17)))

	require.NoError(t, store.AddTransaction(context.Background(), txn))
	require.Equal(t, int64(17), txn.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_GetTransactions_OrderedAndParsed(t *testing.T) {
	mock, store := newMockStore(t)

	rows := pgxmock.NewRows([]string{"id", "article_id", "field", "value"}).
		AddRow(int64(1), int64(10), "UNREAD", false).
		AddRow(int64(2), int64(11), "STARRED", true)

	mock.ExpectQuery("SELECT id, article_id, field, value FROM transactions").
		WillReturnRows(rows)

	txns, err := store.GetTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txns, 2)
	require.Equal(t, models.TransactionFieldUnread, txns[0].Field)
	require.Equal(t, models.TransactionFieldStarred, txns[1].Field)
	require.True(t, txns[1].Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_GetTransactions_CorruptFieldFails(t *testing.T) {
	mock, store := newMockStore(t)

	rows := pgxmock.NewRows([]string{"id", "article_id", "field", "value"}).
		AddRow(int64(1), int64(10), "bogus", false)

	mock.ExpectQuery("SELECT id, article_id, field, value FROM transactions").
		WillReturnRows(rows)

	_, err := store.GetTransactions(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "corrupt transaction")
}

func TestPostgresSyncStore_GetArticle_NotFoundReturnsNil(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("SELECT .+ FROM articles WHERE id").
		WithArgs(int64(123)).
		WillReturnRows(pgxmock.NewRows(articleTestColumns()))

	article, err := store.GetArticle(context.Background(), 123)
	require.NoError(t, err)
	require.Nil(t, article)
	require.NoError(t, mock.ExpectationsWereMet())
}

func articleTestColumns() []string {
	return []string{
		"id", "feed_id", "title", "content", "content_excerpt",
		"flavor_image_uri", "author", "link", "tags", "unread",
		"transient_unread", "marked", "published", "is_updated",
		"score", "last_time_update",
	}
}

func articleTestRow(rows *pgxmock.Rows, a *models.Article) *pgxmock.Rows {
	return rows.AddRow(a.ID, a.FeedID, a.Title, a.Content, a.ContentExcerpt,
		a.FlavorImageURI, a.Author, a.Link, a.Tags, a.IsUnread,
		a.IsTransientUnread, a.IsStarred, a.IsPublished, a.IsUpdated,
		a.Score, a.LastTimeUpdate)
}

func TestPostgresSyncStore_GetLatestArticleForFeed(t *testing.T) {
	mock, store := newMockStore(t)

	want := &models.Article{
		ID:             501,
		FeedID:         7,
		Title:          "Latest",
		Link:           "https://example.com/latest",
		IsUnread:       true,
		LastTimeUpdate: 1700000500,
	}
	mock.ExpectQuery("SELECT .+ FROM articles WHERE feed_id").
		WithArgs(int64(7)).
		WillReturnRows(articleTestRow(pgxmock.NewRows(articleTestColumns()), want))

	got, err := store.GetLatestArticleForFeed(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_InsertArticles_ConflictIsNoop(t *testing.T) {
	mock, store := newMockStore(t)

	a := &models.Article{ID: 501, FeedID: 7, Title: "Seen before"}
	mock.ExpectExec("INSERT INTO articles").
		WithArgs(a.ID, a.FeedID, a.Title, a.Content, a.ContentExcerpt,
			a.FlavorImageURI, a.Author, a.Link, a.Tags, a.IsUnread,
			a.IsTransientUnread, a.IsStarred, a.IsPublished, a.IsUpdated,
			a.Score, a.LastTimeUpdate).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, store.InsertArticles(context.Background(), []*models.Article{a}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_InsertArticles_SkipsUnknownFeed(t *testing.T) {
	mock, store := newMockStore(t)

	// The insert is gated on the feed row still existing, so an article
	// collected for a feed deleted mid-pass inserts zero rows.
	a := &models.Article{ID: 601, FeedID: 99, Title: "Orphaned"}
	mock.ExpectExec(`(?s)INSERT INTO articles.*WHERE EXISTS \(SELECT 1 FROM feeds WHERE id = \$2\)`).
		WithArgs(a.ID, a.FeedID, a.Title, a.Content, a.ContentExcerpt,
			a.FlavorImageURI, a.Author, a.Link, a.Tags, a.IsUnread,
			a.IsTransientUnread, a.IsStarred, a.IsPublished, a.IsUpdated,
			a.Score, a.LastTimeUpdate).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	require.NoError(t, store.InsertArticles(context.Background(), []*models.Article{a}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_UpdateArticlesMetadata(t *testing.T) {
	mock, store := newMockStore(t)

	m := models.ArticleMetadata{
		ID:             501,
		IsUnread:       false,
		IsStarred:      true,
		LastTimeUpdate: 1700000600,
	}
	mock.ExpectExec("UPDATE articles SET").
		WithArgs(m.ID, m.IsUnread, m.IsTransientUnread, m.IsStarred,
			m.IsPublished, m.IsUpdated, m.LastTimeUpdate).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, store.UpdateArticlesMetadata(context.Background(), []models.ArticleMetadata{m}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_GetLatestArticleID_EmptyStore(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(id\), 0\) FROM articles`).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

	id, err := store.GetLatestArticleID(context.Background())
	require.NoError(t, err)
	require.Zero(t, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_DeleteStaleArticles_ReturnsCount(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec("DELETE FROM articles").
		WithArgs(int64(1692220800)).
		WillReturnResult(pgxmock.NewResult("DELETE", 12))

	purged, err := store.DeleteStaleArticles(context.Background(), 1692220800)
	require.NoError(t, err)
	require.Equal(t, int64(12), purged)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSyncStore_DeleteStaleArticles_QueryFailure(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec("DELETE FROM articles").
		WithArgs(int64(1692220800)).
		WillReturnError(errors.New("db failed"))

	_, err := store.DeleteStaleArticles(context.Background(), 1692220800)
	require.Error(t, err)
	require.ErrorContains(t, err, "db failed")
}
