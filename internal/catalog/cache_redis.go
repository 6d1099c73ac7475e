// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/cinelist/internal/platform/constants"
	"github.com/taibuivan/cinelist/internal/platform/ctxutil"
	"github.com/taibuivan/cinelist/internal/platform/metrics"
)

// RedisCache is a read-through cache decorator for [Catalog].
//
// Cache faults are logged and bypassed: a broken cache degrades to a direct
// upstream call, never to an error. Failures and unknown movies are not cached.
type RedisCache struct {
	next   Catalog
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache constructs the decorator.
func NewRedisCache(next Catalog, client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{next: next, client: client, ttl: ttl}
}

// GetMovie implements [Catalog].
func (cache *RedisCache) GetMovie(ctx context.Context, movieID string) (*MovieDetail, error) {
	key := constants.RedisPrefixMovie + movieID

	var movie MovieDetail
	if cache.lookup(ctx, "movie", key, &movie) {
		return &movie, nil
	}

	fetched, err := cache.next.GetMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	cache.store(ctx, key, fetched)
	return fetched, nil
}

// ListPopular implements [Catalog].
func (cache *RedisCache) ListPopular(ctx context.Context, page int) ([]MovieSummary, error) {
	if page < 1 {
		page = 1
	}
	key := constants.RedisPrefixPopular + strconv.Itoa(page)

	var movies []MovieSummary
	if cache.lookup(ctx, "popular", key, &movies) {
		return movies, nil
	}

	fetched, err := cache.next.ListPopular(ctx, page)
	if err != nil {
		return nil, err
	}

	cache.store(ctx, key, fetched)
	return fetched, nil
}

// lookup decodes a cached entry into target and reports whether it was a hit.
func (cache *RedisCache) lookup(ctx context.Context, kind, key string, target any) bool {
	payload, err := cache.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.CatalogCacheLookups.WithLabelValues(kind, "miss").Inc()
		return false
	case err != nil:
		metrics.CatalogCacheLookups.WithLabelValues(kind, "error").Inc()
		ctxutil.GetLogger(ctx).WarnContext(ctx, "catalog_cache_read_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false
	}

	if err := json.Unmarshal(payload, target); err != nil {
		metrics.CatalogCacheLookups.WithLabelValues(kind, "error").Inc()
		ctxutil.GetLogger(ctx).WarnContext(ctx, "catalog_cache_decode_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false
	}

	metrics.CatalogCacheLookups.WithLabelValues(kind, "hit").Inc()
	return true
}

func (cache *RedisCache) store(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := cache.client.Set(ctx, key, payload, cache.ttl).Err(); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "catalog_cache_write_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
