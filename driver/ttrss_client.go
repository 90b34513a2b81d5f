// ABOUTME: Low-level HTTP client for the Tiny Tiny RSS JSON API
// ABOUTME: Handles session login, request envelopes, typed errors and auth retry

package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"feed-sync/models"
	"feed-sync/utils"
)

const (
	// headlinesPageSize is the fixed page size for getHeadlines requests.
	headlinesPageSize = 50

	requestTimeout = 30 * time.Second
	userAgent      = "feed-sync/1.0"
)

// sortOrder values accepted by getHeadlines.
const (
	orderByDefault     = ""
	orderByDateReverse = "date_reverse"
)

// TTRSSClient talks to one Tiny Tiny RSS instance on behalf of one
// account. Every operation POSTs a JSON envelope to the single /api/
// endpoint. A LOGIN_FAILED or NOT_LOGGED_IN response invalidates the
// cached session and triggers exactly one re-login retry.
type TTRSSClient struct {
	httpClient *http.Client
	breaker    *utils.CircuitBreaker
	logger     *slog.Logger

	apiURL   string
	username string
	password string

	mu        sync.Mutex
	sessionID string
	apiLevel  int
}

// NewTTRSSClient creates a new API client for the given instance.
// baseURL is the root of the installation, e.g. https://example.com/tt-rss.
func NewTTRSSClient(baseURL, username, password string, logger *slog.Logger) *TTRSSClient {
	if logger == nil {
		logger = slog.Default()
	}

	return &TTRSSClient{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		breaker:  utils.NewCircuitBreaker(nil, logger),
		logger:   logger,
		apiURL:   strings.TrimRight(baseURL, "/") + "/api/",
		username: username,
		password: password,
	}
}

// GetServerInfo fetches api level, version and instance configuration.
func (c *TTRSSClient) GetServerInfo(ctx context.Context) (*models.ServerInfo, error) {
	var level apiLevelContent
	if err := c.call(ctx, "getApiLevel", nil, &level); err != nil {
		return nil, fmt.Errorf("failed to get api level: %w", err)
	}

	var version versionContent
	if err := c.call(ctx, "getVersion", nil, &version); err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	var cfg configContent
	if err := c.call(ctx, "getConfig", nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &models.ServerInfo{
		APILevel: level.Level,
		Version:  version.Version,
		IconsURL: cfg.IconsURL,
		NumFeeds: cfg.NumFeeds,
	}, nil
}

// GetFeeds fetches the full feed list of the account.
func (c *TTRSSClient) GetFeeds(ctx context.Context) ([]models.Feed, error) {
	params := map[string]interface{}{
		"cat_id":      -3, // all feeds, excluding virtual
		"unread_only": false,
	}

	var wire []wireFeed
	if err := c.call(ctx, "getFeeds", params, &wire); err != nil {
		return nil, fmt.Errorf("failed to get feeds: %w", err)
	}

	feeds := make([]models.Feed, 0, len(wire))
	for _, w := range wire {
		feeds = append(feeds, w.toModel())
	}

	c.logger.Debug("Fetched feed list", "count", len(feeds))
	return feeds, nil
}

// GetCategories fetches the category list of the account.
func (c *TTRSSClient) GetCategories(ctx context.Context) ([]models.Category, error) {
	params := map[string]interface{}{
		"unread_only":   false,
		"enable_nested": false,
	}

	var wire []wireCategory
	if err := c.call(ctx, "getCategories", params, &wire); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	categories := make([]models.Category, 0, len(wire))
	for _, w := range wire {
		categories = append(categories, w.toModel())
	}

	c.logger.Debug("Fetched category list", "count", len(categories))
	return categories, nil
}

// GetArticles fetches one page of headlines for a feed, newest first,
// restricted to articles with id greater than sinceID.
func (c *TTRSSClient) GetArticles(ctx context.Context, feedID, sinceID int64, offset int, showExcerpt, showContent bool) ([]*models.Article, error) {
	return c.getHeadlines(ctx, feedID, sinceID, offset, showExcerpt, showContent, orderByDefault)
}

// GetArticlesOrderByDateReverse fetches one page of headlines sorted by
// reverse date. Used for gradual collection where each page is committed
// independently: collecting oldest first keeps the latest-article-id
// high-water mark consistent after a partial run.
func (c *TTRSSClient) GetArticlesOrderByDateReverse(ctx context.Context, feedID, sinceID int64, offset int, showExcerpt, showContent bool) ([]*models.Article, error) {
	return c.getHeadlines(ctx, feedID, sinceID, offset, showExcerpt, showContent, orderByDateReverse)
}

func (c *TTRSSClient) getHeadlines(ctx context.Context, feedID, sinceID int64, offset int, showExcerpt, showContent bool, orderBy string) ([]*models.Article, error) {
	params := map[string]interface{}{
		"feed_id":             feedID,
		"limit":               headlinesPageSize,
		"skip":                offset,
		"show_excerpt":        showExcerpt,
		"show_content":        showContent,
		"include_attachments": false,
	}
	if sinceID > 0 {
		params["since_id"] = sinceID
	}
	if orderBy != "" {
		params["order_by"] = orderBy
	}

	var wire []wireHeadline
	if err := c.call(ctx, "getHeadlines", params, &wire); err != nil {
		return nil, fmt.Errorf("failed to get headlines for feed %d: %w", feedID, err)
	}

	articles := make([]*models.Article, 0, len(wire))
	for _, w := range wire {
		articles = append(articles, w.toModel())
	}

	return articles, nil
}

// UpdateArticleField pushes one status flag change to the server.
func (c *TTRSSClient) UpdateArticleField(ctx context.Context, articleID int64, field models.TransactionField, value bool) error {
	mode := 0
	if value {
		mode = 1
	}
	params := map[string]interface{}{
		"article_ids": strconv.FormatInt(articleID, 10),
		"mode":        mode,
		"field":       int(field),
	}

	var content updateArticleContent
	if err := c.call(ctx, "updateArticle", params, &content); err != nil {
		return fmt.Errorf("failed to update article %d field %s: %w", articleID, field, err)
	}

	c.logger.Debug("Updated article field",
		"article_id", articleID,
		"field", field.String(),
		"value", value,
		"updated", content.Updated)
	return nil
}

// SubscribeToFeed subscribes the account to a new feed URL.
func (c *TTRSSClient) SubscribeToFeed(ctx context.Context, feedURL string, categoryID int64, feedLogin, feedPassword string) (models.SubscribeResult, error) {
	params := map[string]interface{}{
		"feed_url":    feedURL,
		"category_id": categoryID,
	}
	if feedLogin != "" {
		params["login"] = feedLogin
		params["password"] = feedPassword
	}

	var content subscribeContent
	if err := c.call(ctx, "subscribeToFeed", params, &content); err != nil {
		return models.SubscribeUnknownError, fmt.Errorf("failed to subscribe to %s: %w", feedURL, err)
	}

	switch content.Status.Code {
	case 0, 1: // already subscribed, added
		return models.SubscribeSuccess, nil
	case 2, 3, 6: // invalid url, nothing found, invalid content
		return models.SubscribeInvalidURL, nil
	default:
		return models.SubscribeUnknownError, nil
	}
}

// UnsubscribeFromFeed removes a feed subscription.
func (c *TTRSSClient) UnsubscribeFromFeed(ctx context.Context, feedID int64) (bool, error) {
	params := map[string]interface{}{
		"feed_id": feedID,
	}

	var content unsubscribeContent
	if err := c.call(ctx, "unsubscribeFeed", params, &content); err != nil {
		return false, fmt.Errorf("failed to unsubscribe feed %d: %w", feedID, err)
	}
	return content.Status == "OK", nil
}

// GetFeedIcon fetches the icon bytes the server stores for a feed. The
// caller must close the returned reader.
func (c *TTRSSClient) GetFeedIcon(ctx context.Context, feedID int64) (io.ReadCloser, error) {
	iconURL := strings.TrimSuffix(c.apiURL, "api/") + "feed-icons/" + strconv.FormatInt(feedID, 10) + ".ico"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iconURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed icon: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("feed icon request returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// call executes one API operation, transparently logging in when no
// session exists and retrying once after an authentication error.
func (c *TTRSSClient) call(ctx context.Context, op string, params map[string]interface{}, out interface{}) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		sid, err := c.session(ctx)
		if err != nil {
			return err
		}

		err = c.post(ctx, op, sid, params, out)
		if apiErr, ok := models.AsAPIError(err); ok && apiErr.IsAuthenticationError() {
			c.logger.Warn("Session rejected, re-authenticating once",
				"op", op,
				"error_code", apiErr.Code)
			c.invalidateSession()

			sid, err = c.session(ctx)
			if err != nil {
				return err
			}
			err = c.post(ctx, op, sid, params, out)
		}
		return err
	})
}

// session returns the cached session id, logging in if necessary.
func (c *TTRSSClient) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessionID != "" {
		return c.sessionID, nil
	}

	var content loginContent
	params := map[string]interface{}{
		"user":     c.username,
		"password": c.password,
	}
	if err := c.post(ctx, "login", "", params, &content); err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	c.sessionID = content.SessionID
	c.apiLevel = content.APILevel
	c.logger.Info("Logged in to tt-rss instance",
		"api_level", content.APILevel)
	return c.sessionID, nil
}

func (c *TTRSSClient) invalidateSession() {
	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()
}

// post sends one envelope and decodes the content payload into out.
func (c *TTRSSClient) post(ctx context.Context, op, sid string, params map[string]interface{}, out interface{}) error {
	body := make(map[string]interface{}, len(params)+2)
	for k, v := range params {
		body[k] = v
	}
	body["op"] = op
	if sid != "" {
		body["sid"] = sid
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.WrapAPIError(fmt.Sprintf("%s request failed", op), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("API request failed",
			"op", op,
			"status_code", resp.StatusCode,
			"response_body", string(raw))
		return models.WrapAPIError(
			fmt.Sprintf("%s request returned status %d", op, resp.StatusCode), nil)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return models.WrapAPIError(fmt.Sprintf("failed to decode %s response", op), err)
	}

	if envelope.Status != 0 {
		var errContent apiErrorContent
		if err := json.Unmarshal(envelope.Content, &errContent); err != nil {
			return models.NewAPIError(models.APIErrorUnknown,
				fmt.Sprintf("%s call failed with unparseable error", op))
		}
		return models.NewAPIError(mapErrorCode(errContent.Error),
			fmt.Sprintf("%s call failed", op))
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Content, out); err != nil {
			return models.WrapAPIError(fmt.Sprintf("failed to decode %s content", op), err)
		}
	}
	return nil
}
