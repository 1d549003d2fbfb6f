package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimit(t *testing.T) {
	repo := NewMemoryRateLimitRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := repo.CheckRateLimit(ctx, 1, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}

	ok, err := repo.CheckRateLimit(ctx, 1, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "fourth request should be rejected")

	// Другой пользователь считается отдельно
	ok, err = repo.CheckRateLimit(ctx, 2, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryRateLimitWindowExpiry(t *testing.T) {
	repo := NewMemoryRateLimitRepository()
	ctx := context.Background()

	ok, err := repo.CheckRateLimit(ctx, 1, 1, 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CheckRateLimit(ctx, 1, 1, 10*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)

	time.Sleep(20 * time.Millisecond)

	ok, err = repo.CheckRateLimit(ctx, 1, 1, 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok, "window should have reset")
}
