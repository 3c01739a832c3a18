//go:build integration

package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	platformredis "sovindex/internal/platform/redis"
	"sovindex/internal/readiness/cache"
	"sovindex/internal/readiness/models"
	"sovindex/pkg/testutil/containers"
)

type SummaryCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.SummaryCache
	ctx   context.Context
}

func TestSummaryCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SummaryCacheSuite))
}

func (s *SummaryCacheSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())

	client, err := platformredis.New(s.redis.URL)
	s.Require().NoError(err)
	s.cache = cache.New(client)
}

func (s *SummaryCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func score(v float64) *float64 { return &v }

func (s *SummaryCacheSuite) TestMissOnEmptyCache() {
	summaries, ok := s.cache.Get(s.ctx)
	s.False(ok)
	s.Nil(summaries)
}

func (s *SummaryCacheSuite) TestSetThenGetRoundTrip() {
	stored := []models.CountrySummary{
		{ISOCode: "EU", Name: "European Union", ReadinessScore: score(60.4)},
		{ISOCode: "US", Name: "United States"},
	}
	s.cache.Set(s.ctx, stored)

	cached, ok := s.cache.Get(s.ctx)
	s.Require().True(ok)
	s.Require().Len(cached, 2)
	s.Equal("EU", cached[0].ISOCode)
	s.Require().NotNil(cached[0].ReadinessScore)
	s.Equal(60.4, *cached[0].ReadinessScore)
	// Null score fields survive the round trip as nil.
	s.Nil(cached[1].ReadinessScore)
}

func (s *SummaryCacheSuite) TestInvalidateDropsEntry() {
	s.cache.Set(s.ctx, []models.CountrySummary{{ISOCode: "EU", Name: "European Union"}})
	_, ok := s.cache.Get(s.ctx)
	s.Require().True(ok)

	s.cache.Invalidate(s.ctx)

	_, ok = s.cache.Get(s.ctx)
	s.False(ok)
}

func (s *SummaryCacheSuite) TestEntryCarriesTTL() {
	s.cache.Set(s.ctx, []models.CountrySummary{{ISOCode: "EU", Name: "European Union"}})

	ttl, err := s.redis.Client.TTL(s.ctx, "sovindex:summaries").Result()
	s.Require().NoError(err)
	s.Greater(ttl.Seconds(), 0.0)
	s.LessOrEqual(ttl, cache.TTL)
}

func (s *SummaryCacheSuite) TestNilCacheIsInert() {
	var nilCache *cache.SummaryCache
	nilCache.Set(s.ctx, []models.CountrySummary{{ISOCode: "EU"}})
	nilCache.Invalidate(s.ctx)
	_, ok := nilCache.Get(s.ctx)
	s.False(ok)
}
