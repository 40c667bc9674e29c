//go:build integration

package geo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	platformredis "cims/internal/platform/redis"
	"cims/pkg/testutil/containers"
)

type CacheIntegrationSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	backing *InMemoryStore
	cached  Store
	ctx     context.Context
}

func TestCacheIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CacheIntegrationSuite))
}

func (s *CacheIntegrationSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *CacheIntegrationSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.redis.FlushAll(s.ctx))

	s.backing = NewInMemoryStore()
	s.backing.Seed(
		[]Province{{Code: "0128", Name: "Ilocos Norte"}},
		[]LGU{{Code: "012801", Name: "Laoag", ProvinceCode: "0128"}},
		nil,
	)
	client := &platformredis.Client{Client: s.redis.Client}
	s.cached = NewCache(s.backing, client, time.Minute, nil)
}

func (s *CacheIntegrationSuite) TestProvincesAreServedFromCache() {
	provinces, err := s.cached.ListProvinces(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(provinces, 1)

	// A backing-store change is invisible until the entry expires.
	s.backing.Seed([]Province{{Code: "0133", Name: "Ilocos Sur"}}, nil, nil)

	provinces, err = s.cached.ListProvinces(s.ctx)
	s.Require().NoError(err)
	s.Len(provinces, 1)

	fresh, err := s.backing.ListProvinces(s.ctx)
	s.Require().NoError(err)
	s.Len(fresh, 2)
}

func (s *CacheIntegrationSuite) TestLGUEntriesAreKeyedByProvince() {
	lgus, err := s.cached.ListLGUs(s.ctx, "0128")
	s.Require().NoError(err)
	s.Require().Len(lgus, 1)

	keys, err := s.redis.Client.Keys(s.ctx, "geo:lgus:*").Result()
	s.Require().NoError(err)
	s.Equal([]string{"geo:lgus:0128"}, keys)
}

func (s *CacheIntegrationSuite) TestCorruptEntryFallsThrough() {
	s.Require().NoError(s.redis.Client.Set(s.ctx, "geo:provinces", "{not json", time.Minute).Err())

	provinces, err := s.cached.ListProvinces(s.ctx)
	s.Require().NoError(err)
	s.Len(provinces, 1)
}
