package reports

import (
	"context"
	"testing"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportOwnerBookings(t *testing.T) {
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	owner := &models.User{Name: "owner", Email: "owner@example.com"}
	require.NoError(t, db.CreateUser(ctx, owner))
	booker := &models.User{Name: "booker", Email: "booker@example.com"}
	require.NoError(t, db.CreateUser(ctx, booker))

	item := &models.Item{Name: "Drill", Description: "powerful", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, item))

	now := time.Now()
	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    now.Add(time.Hour),
		End:      now.Add(24 * time.Hour),
		Status:   models.StatusWaiting,
	}
	require.NoError(t, db.CreateBooking(ctx, booking))

	exporter := NewExporter(db, t.TempDir(), &logger)

	path, err := exporter.ExportOwnerBookings(ctx, owner.ID)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one booking")
	assert.Equal(t, "Item", rows[0][1])
	assert.Equal(t, "Drill", rows[1][1])
	assert.Equal(t, "booker", rows[1][2])
	assert.Equal(t, models.StatusWaiting, rows[1][5])
}

func TestExportOwnerBookingsUnknownOwner(t *testing.T) {
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()

	exporter := NewExporter(db, t.TempDir(), &logger)

	_, err = exporter.ExportOwnerBookings(context.Background(), 42)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
