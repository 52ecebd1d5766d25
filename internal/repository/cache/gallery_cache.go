// Package cache holds the Redis backed read caches. Every type degrades to a
// pass-through when no client is configured.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"promptito-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix         = "promptito:"
	galleryVersionKey = keyPrefix + "gallery:version"
)

// GalleryCache stores gallery listings. Keys embed a version counter, so
// Invalidate drops every listing at once without scanning.
type GalleryCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewGalleryCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *GalleryCache {
	return &GalleryCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *GalleryCache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

func (c *GalleryCache) key(ctx context.Context, parts ...string) (string, error) {
	version, err := c.rdb.Get(ctx, galleryVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("%sgallery:v%d:%s", keyPrefix, version, strings.Join(parts, "|")), nil
}

// Get decodes the cached value into dst and reports a hit.
func (c *GalleryCache) Get(ctx context.Context, dst any, parts ...string) bool {
	if !c.enabled() {
		return false
	}
	key, err := c.key(ctx, parts...)
	if err != nil {
		c.logger.Warn("GalleryCache", "Version lookup failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("GalleryCache", "Read failed", map[string]interface{}{"error": err.Error()})
		}
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *GalleryCache) Set(ctx context.Context, value any, parts ...string) {
	if !c.enabled() {
		return
	}
	key, err := c.key(ctx, parts...)
	if err != nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("GalleryCache", "Write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (c *GalleryCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, galleryVersionKey).Err(); err != nil {
		c.logger.Warn("GalleryCache", "Invalidate failed", map[string]interface{}{"error": err.Error()})
	}
}
