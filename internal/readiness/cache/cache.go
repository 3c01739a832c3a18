// Package cache is an optional Redis read-through cache for country
// summaries. The API works without it; a nil *SummaryCache disables caching.
package cache

import (
	"context"
	"encoding/json"
	"time"

	platformredis "sovindex/internal/platform/redis"
	"sovindex/internal/readiness/models"
)

const summariesKey = "sovindex:summaries"

// TTL bounds staleness between scoring runs; Invalidate is also called on
// every snapshot append.
const TTL = 5 * time.Minute

// SummaryCache stores the overview summary list.
type SummaryCache struct {
	client *platformredis.Client
}

// New returns a SummaryCache, or nil when the client is nil (Redis not
// configured).
func New(client *platformredis.Client) *SummaryCache {
	if client == nil {
		return nil
	}
	return &SummaryCache{client: client}
}

// Get returns the cached summary list and whether it was present. Cache
// failures degrade to a miss; callers fall through to the store.
func (c *SummaryCache) Get(ctx context.Context) ([]models.CountrySummary, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, summariesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var summaries []models.CountrySummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		return nil, false
	}
	return summaries, true
}

// Set stores the summary list. Errors are ignored; the cache is best-effort.
func (c *SummaryCache) Set(ctx context.Context, summaries []models.CountrySummary) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	c.client.Set(ctx, summariesKey, raw, TTL)
}

// Invalidate drops the cached list; called after snapshot writes.
func (c *SummaryCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.client.Del(ctx, summariesKey)
}
