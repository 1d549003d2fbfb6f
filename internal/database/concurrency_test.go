package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Из нескольких конкурирующих решений по одной брони должно пройти ровно одно.
func TestConcurrentBookingDecisions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	booker := createTestUser(t, db, "booker")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	start := time.Now().Add(time.Hour)
	booking := createTestBooking(t, db, item.ID, booker.ID, start, start.Add(time.Hour), models.StatusWaiting)

	const goroutines = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		decided   int
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		status := models.StatusApproved
		if i%2 == 1 {
			status = models.StatusRejected
		}
		go func(status string) {
			defer wg.Done()
			err := db.UpdateBookingStatusIfWaiting(ctx, booking.ID, status)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrAlreadyDecided):
				decided++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(status)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, goroutines-1, decided)

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.NotEqual(t, models.StatusWaiting, got.Status)
}

func TestConcurrentBookingCreation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	booker := createTestUser(t, db, "booker")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	const goroutines = 10
	var wg sync.WaitGroup
	ids := make(chan int64, goroutines)

	start := time.Now().Add(time.Hour)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := &models.Booking{
				ItemID:   item.ID,
				BookerID: booker.ID,
				Start:    start,
				End:      start.Add(time.Hour),
				Status:   models.StatusWaiting,
			}
			if err := db.CreateBooking(ctx, b); err != nil {
				t.Errorf("create booking: %v", err)
				return
			}
			ids <- b.ID
		}()
	}
	wg.Wait()
	close(ids)

	// Идентификаторы не должны повторяться
	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines)
}
