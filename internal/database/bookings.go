package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `b.id, b.item_id, i.name, b.booker_id, u.name,
       b.start_date, b.end_date, b.status, b.created_at`

const bookingJoins = `FROM bookings b
       JOIN items i ON i.id = b.item_id
       JOIN users u ON u.id = b.booker_id`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		booking.Start.Unix(),
		booking.End.Unix(),
		booking.Status,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + ` WHERE b.id = ?`

	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatusIfWaiting переводит бронь из waiting в новый статус.
// Сравнение статуса выполняется в том же UPDATE, поэтому из двух
// конкурирующих решений пройдет только одно.
func (db *DB) UpdateBookingStatusIfWaiting(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, status, id, models.StatusWaiting)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrAlreadyDecided
	}
	return nil
}

// GetBookingsByBooker возвращает брони пользователя с учетом временного
// фильтра. Момент "сейчас" передается снаружи и один на всю операцию.
func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState,
	now time.Time, p models.Pagination) ([]models.Booking, error) {
	return db.queryBookingsByState(ctx, `b.booker_id = ?`, bookerID, state, now, p)
}

// GetBookingsByOwner возвращает брони всех вещей владельца.
func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState,
	now time.Time, p models.Pagination) ([]models.Booking, error) {
	return db.queryBookingsByState(ctx, `i.owner_id = ?`, ownerID, state, now, p)
}

func (db *DB) queryBookingsByState(ctx context.Context, subject string, subjectID int64,
	state models.BookingState, now time.Time, p models.Pagination) ([]models.Booking, error) {
	var (
		predicate string
		args      = []interface{}{subjectID}
	)

	switch state {
	case models.StateAll:
		predicate = ``
	case models.StateCurrent:
		predicate = ` AND b.start_date <= ? AND b.end_date >= ?`
		args = append(args, now.Unix(), now.Unix())
	case models.StatePast:
		predicate = ` AND b.end_date < ?`
		args = append(args, now.Unix())
	case models.StateFuture:
		predicate = ` AND b.start_date > ?`
		args = append(args, now.Unix())
	case models.StateWaiting:
		predicate = ` AND b.status = ?`
		args = append(args, models.StatusWaiting)
	case models.StateRejected:
		predicate = ` AND b.status = ?`
		args = append(args, models.StatusRejected)
	default:
		return nil, models.ErrUnsupportedState
	}

	query := `SELECT ` + bookingColumns + ` ` + bookingJoins +
		` WHERE ` + subject + predicate +
		` ORDER BY b.start_date DESC, b.id DESC LIMIT ? OFFSET ?`
	args = append(args, p.Size, p.Offset())

	return db.queryBookings(ctx, query, args...)
}

// GetLastBookings возвращает для каждой вещи последнюю подтвержденную бронь
// с началом не позже now. Одна выборка на весь список вещей.
func (db *DB) GetLastBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins +
		` WHERE b.item_id IN (` + placeholders(len(itemIDs)) + `)
          AND b.status = ? AND b.start_date <= ?
          ORDER BY b.start_date DESC, b.id DESC`
	return db.queryFirstPerItem(ctx, query, itemIDs, now)
}

// GetNextBookings возвращает для каждой вещи ближайшую подтвержденную бронь
// с началом позже now.
func (db *DB) GetNextBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins +
		` WHERE b.item_id IN (` + placeholders(len(itemIDs)) + `)
          AND b.status = ? AND b.start_date > ?
          ORDER BY b.start_date ASC, b.id ASC`
	return db.queryFirstPerItem(ctx, query, itemIDs, now)
}

func (db *DB) queryFirstPerItem(ctx context.Context, query string, itemIDs []int64, now time.Time) (map[int64]models.Booking, error) {
	result := make(map[int64]models.Booking)
	if len(itemIDs) == 0 {
		return result, nil
	}

	args := int64Args(itemIDs)
	args = append(args, models.StatusApproved, now.Unix())

	bookings, err := db.queryBookings(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// Строки отсортированы, первая по каждой вещи и есть искомая.
	for _, b := range bookings {
		if _, ok := result[b.ItemID]; !ok {
			result[b.ItemID] = b
		}
	}
	return result, nil
}

// HasFinishedBooking сообщает, пользовался ли пользователь вещью:
// есть ли у него бронь этой вещи, завершившаяся до now.
// Статус брони не учитывается: достаточно любого завершившегося срока.
func (db *DB) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE booker_id = ? AND item_id = ? AND end_date < ?`

	var count int
	err := db.QueryRowContext(ctx, query, bookerID, itemID, now.Unix()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...interface{}) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var (
		booking   models.Booking
		startUnix int64
		endUnix   int64
	)
	err := row.Scan(
		&booking.ID,
		&booking.ItemID,
		&booking.ItemName,
		&booking.BookerID,
		&booking.BookerName,
		&startUnix,
		&endUnix,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	booking.Start = time.Unix(startUnix, 0)
	booking.End = time.Unix(endUnix, 0)
	return &booking, nil
}
