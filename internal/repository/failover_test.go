package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRateLimitRepo struct {
	mock.Mock
}

func (m *mockRateLimitRepo) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, userID, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverRateLimitRepository(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.New(io.Discard)

	t.Run("PrimarySuccess", func(t *testing.T) {
		primary := new(mockRateLimitRepo)
		fallback := new(mockRateLimitRepo)
		repo := NewFailoverRateLimitRepository(primary, fallback, &logger)

		primary.On("CheckRateLimit", ctx, int64(1), 10, time.Minute).Return(true, nil).Once()

		ok, err := repo.CheckRateLimit(ctx, 1, 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, ok)
		primary.AssertExpectations(t)
		fallback.AssertNotCalled(t, "CheckRateLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FallbackOnPrimaryError", func(t *testing.T) {
		primary := new(mockRateLimitRepo)
		fallback := new(mockRateLimitRepo)
		repo := NewFailoverRateLimitRepository(primary, fallback, &logger)

		primary.On("CheckRateLimit", ctx, int64(1), 10, time.Minute).
			Return(false, errors.New("connection refused")).Once()
		fallback.On("CheckRateLimit", ctx, int64(1), 10, time.Minute).Return(true, nil).Once()

		ok, err := repo.CheckRateLimit(ctx, 1, 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, ok)
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("StaysOnFallbackWhileDown", func(t *testing.T) {
		primary := new(mockRateLimitRepo)
		fallback := new(mockRateLimitRepo)
		repo := NewFailoverRateLimitRepository(primary, fallback, &logger)

		primary.On("CheckRateLimit", ctx, int64(1), 10, time.Minute).
			Return(false, errors.New("connection refused")).Once()
		fallback.On("CheckRateLimit", ctx, int64(1), 10, time.Minute).Return(true, nil).Twice()

		_, err := repo.CheckRateLimit(ctx, 1, 10, time.Minute)
		assert.NoError(t, err)

		// Пока не истек интервал проверки, к основному не возвращаемся
		ok, err := repo.CheckRateLimit(ctx, 1, 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, ok)
		primary.AssertNumberOfCalls(t, "CheckRateLimit", 1)
		fallback.AssertExpectations(t)
	})
}
