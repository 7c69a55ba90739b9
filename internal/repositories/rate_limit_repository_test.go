package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/catalog-admin/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSubmitRateLimit(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cfg := config.RateConfig{MaxAttempts: 3, WindowSize: time.Minute}
	key := submitAttemptsKey("admin-1")
	windowStart := fmt.Sprintf("%d", now.Unix()-60)

	setup := func(t *testing.T) (*rateLimitRepository, redismock.ClientMock) {
		t.Helper()

		client, mock := redismock.NewClientMock()
		repo := NewRateLimitRepo(client, cfg).(*rateLimitRepository)
		repo.now = func() time.Time { return now }

		return repo, mock
	}

	expectWindow := func(mock redismock.ClientMock, attempts int64) {
		mock.ExpectTxPipeline()
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()}).SetVal(1)
		mock.ExpectZCard(key).SetVal(attempts)
		mock.ExpectExpire(key, time.Minute).SetVal(true)
		mock.ExpectTxPipelineExec()
	}

	t.Run("Success - Within Limit", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)
		expectWindow(mock, 2)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckSubmitRateLimit(ctx, "admin-1")

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, remaining)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Last Allowed Attempt", func(t *testing.T) {
		repo, mock := setup(t)
		expectWindow(mock, 3)

		allowed, remaining, _, err := repo.CheckSubmitRateLimit(ctx, "admin-1")

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Limit Exceeded", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)
		expectWindow(mock, 4)
		oldest := float64(now.Unix() - 45)
		mock.ExpectZRangeWithScores(key, 0, 0).SetVal([]redis.Z{{Score: oldest, Member: "x"}})

		// Act
		allowed, remaining, retryAfter, err := repo.CheckSubmitRateLimit(ctx, "admin-1")

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.Equal(t, 15, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Limit Exceeded - Oldest Attempt Unavailable", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)
		expectWindow(mock, 4)
		mock.ExpectZRangeWithScores(key, 0, 0).SetErr(errors.New("connection reset"))

		// Act
		allowed, remaining, retryAfter, err := repo.CheckSubmitRateLimit(ctx, "admin-1")

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.Equal(t, 60, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Pipeline Error", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)
		redisErr := errors.New("connection refused")
		mock.ExpectTxPipeline()
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetErr(redisErr)

		// Act
		allowed, _, _, err := repo.CheckSubmitRateLimit(ctx, "admin-1")

		// Assert
		require.Error(t, err)
		assert.False(t, allowed)
		assert.Contains(t, err.Error(), "redis pipeline error for rate limit check")
	})
}
