package service_test

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/catalog-admin/internal/cache"
	"github.com/aaravmahajanofficial/catalog-admin/internal/config"
	"github.com/go-redis/redismock/v9"
)

const testTTL = 10 * time.Minute

func newTestCache(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: testTTL}), mock
}
