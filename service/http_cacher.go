// ABOUTME: Best-effort HTTP image cache primer backed by Redis
// ABOUTME: Pre-warms article images so unread articles render offline

package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	imageCacheKeyPrefix = "imgcache:"
	maxImageBytes       = 5 << 20
)

// ImageCache stores fetched image bodies keyed by url.
type ImageCache interface {
	Has(ctx context.Context, url string) (bool, error)
	Put(ctx context.Context, url string, body []byte, ttl time.Duration) error
}

// RedisImageCache is the Redis-backed ImageCache.
type RedisImageCache struct {
	client *redis.Client
}

// NewRedisImageCache creates an ImageCache on an existing Redis client.
func NewRedisImageCache(client *redis.Client) *RedisImageCache {
	return &RedisImageCache{client: client}
}

func (c *RedisImageCache) Has(ctx context.Context, url string) (bool, error) {
	n, err := c.client.Exists(ctx, imageCacheKeyPrefix+url).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cached image: %w", err)
	}
	return n > 0, nil
}

func (c *RedisImageCache) Put(ctx context.Context, url string, body []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, imageCacheKeyPrefix+url, body, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached image: %w", err)
	}
	return nil
}

// HTTPCacher downloads images and stores them in an ImageCache. Every
// failure is logged and swallowed: priming the cache must never fail a
// sync pass.
type HTTPCacher struct {
	httpClient *http.Client
	cache      ImageCache
	logger     *slog.Logger
	ttl        time.Duration
}

// NewHTTPCacher creates an HTTP cache primer.
func NewHTTPCacher(httpClient *http.Client, cache ImageCache, ttl time.Duration, logger *slog.Logger) *HTTPCacher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPCacher{
		httpClient: httpClient,
		cache:      cache,
		logger:     logger,
		ttl:        ttl,
	}
}

// CacheImages fetches each url not already cached and stores its body.
// It returns the number of images newly cached.
func (h *HTTPCacher) CacheImages(ctx context.Context, urls []string) int {
	cached := 0
	for _, url := range urls {
		if ctx.Err() != nil {
			return cached
		}
		if h.cacheImage(ctx, url) {
			cached++
		}
	}
	return cached
}

func (h *HTTPCacher) cacheImage(ctx context.Context, url string) bool {
	known, err := h.cache.Has(ctx, url)
	if err != nil {
		h.logger.Warn("Image cache lookup failed", "url", url, "error", err)
		return false
	}
	if known {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		h.logger.Warn("Skipping uncacheable image url", "url", url, "error", err)
		return false
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Warn("Image fetch failed", "url", url, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		h.logger.Warn("Image fetch returned non-200", "url", url, "status", resp.StatusCode)
		return false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		h.logger.Warn("Image body read failed", "url", url, "error", err)
		return false
	}
	if len(body) > maxImageBytes {
		h.logger.Warn("Image too large to cache", "url", url)
		return false
	}

	if err := h.cache.Put(ctx, url, body, h.ttl); err != nil {
		h.logger.Warn("Image cache store failed", "url", url, "error", err)
		return false
	}
	return true
}
