// Package cache provides a Redis-backed cache for rendered report
// summaries. Payloads are JSON compressed with zstd: cross-store summaries
// with full breakdowns compress to a fraction of their raw size.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"retailhub/internal/domain/reports"
	"retailhub/pkg/logger"
)

// ReportCache caches profit summaries in Redis. All failures degrade to a
// cache miss; a broken cache must never break report generation.
type ReportCache struct {
	client  *redis.Client
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ reports.SummaryCache = (*ReportCache)(nil)

// NewReportCache creates a report cache on an existing Redis client.
func NewReportCache(client *redis.Client) (*ReportCache, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	return &ReportCache{
		client:  client,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Get retrieves a cached summary.
func (c *ReportCache) Get(ctx context.Context, key string) (*reports.Summary, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx, "report cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	decoded, err := c.decoder.DecodeAll(raw, nil)
	if err != nil {
		logger.Warn(ctx, "report cache payload corrupt", "key", key, "error", err)
		return nil, false
	}

	var s reports.Summary
	if err := json.Unmarshal(decoded, &s); err != nil {
		logger.Warn(ctx, "report cache payload corrupt", "key", key, "error", err)
		return nil, false
	}

	return &s, true
}

// Set stores a summary with the given TTL.
func (c *ReportCache) Set(ctx context.Context, key string, s *reports.Summary, ttl time.Duration) {
	payload, err := json.Marshal(s)
	if err != nil {
		logger.Warn(ctx, "report cache marshal failed", "key", key, "error", err)
		return
	}

	compressed := c.encoder.EncodeAll(payload, nil)
	if err := c.client.Set(ctx, key, compressed, ttl).Err(); err != nil {
		logger.Warn(ctx, "report cache write failed", "key", key, "error", err)
	}
}

// Invalidate removes cached summaries matching the given key pattern.
func (c *ReportCache) Invalidate(ctx context.Context, pattern string) {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn(ctx, "report cache invalidation failed", "key", iter.Val(), "error", err)
		}
	}
}
