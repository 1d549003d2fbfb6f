package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *database.DB
	bus      *events.EventBus
	bookings *BookingService
	items    *ItemService
	users    *UserService
	requests *RequestService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bus := events.NewEventBus()
	bookings := NewBookingService(db, bus, &logger)
	return &testEnv{
		db:       db,
		bus:      bus,
		bookings: bookings,
		items:    NewItemService(db, bookings, &logger),
		users:    NewUserService(db, &logger),
		requests: NewRequestService(db, &logger),
	}
}

func (e *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: fmt.Sprintf("%s@example.com", name)}
	require.NoError(t, e.db.CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) createItem(t *testing.T, ownerID int64, name string, available bool) *models.Item {
	t.Helper()
	item := &models.Item{
		Name:        name,
		Description: name + " description",
		Available:   available,
		OwnerID:     ownerID,
	}
	require.NoError(t, e.db.CreateItem(context.Background(), item))
	return item
}

func (e *testEnv) createBooking(t *testing.T, itemID, bookerID int64, start, end time.Time, status string) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   status,
	}
	require.NoError(t, e.db.CreateBooking(context.Background(), booking))
	return booking
}
