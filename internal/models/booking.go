package models

import (
	"errors"
	"time"
)

type Booking struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	ItemName   string    `json:"item_name"`
	BookerID   int64     `json:"booker_id"`
	BookerName string    `json:"booker_name"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"` // waiting, approved, rejected
	CreatedAt  time.Time `json:"created_at"`
}

// BookingState — временной фильтр списков бронирований.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ErrUnsupportedState reports a state token outside the closed filter set.
var ErrUnsupportedState = errors.New("unsupported booking state")

// ParseBookingState validates a raw filter token at the boundary. The match
// is exact: tokens are case-sensitive, an empty string is not defaulted here.
func ParseBookingState(raw string) (BookingState, error) {
	switch BookingState(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(raw), nil
	default:
		return "", ErrUnsupportedState
	}
}

// Pagination carries from/size list parameters. Offset follows the original
// contract: page number from/size, so the effective offset is a whole page.
type Pagination struct {
	From int
	Size int
}

// Offset returns the row offset for LIMIT/OFFSET queries.
func (p Pagination) Offset() int {
	if p.Size <= 0 {
		return 0
	}
	return p.From / p.Size * p.Size
}
