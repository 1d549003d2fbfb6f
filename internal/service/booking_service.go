package service

import (
	"context"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService реализует жизненный цикл брони:
// waiting -> approved | rejected, без дальнейших переходов.
type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, itemID int64, start, end time.Time, bookerID int64) (*models.Booking, error) {
	// Момент "сейчас" фиксируется один раз на всю операцию.
	now := time.Now()

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.repo.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	if !item.Available {
		return nil, database.ErrItemUnavailable
	}
	if booker.ID == item.OwnerID {
		return nil, database.ErrOwnItemBooking
	}
	if !end.After(start) || start.Before(now) {
		return nil, database.ErrWrongDate
	}

	booking := &models.Booking{
		ItemID:     item.ID,
		ItemName:   item.Name,
		BookerID:   booker.ID,
		BookerName: booker.Name,
		Start:      start,
		End:        end,
		Status:     models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", booker.ID).
		Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, 0)

	return booking, nil
}

func (s *BookingService) ApproveBooking(ctx context.Context, bookingID int64, approved bool, userID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	if booking.Status != models.StatusWaiting {
		return nil, database.ErrAlreadyDecided
	}
	if userID != item.OwnerID {
		return nil, database.ErrNotOwner
	}

	newStatus := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		newStatus = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	// Повторная проверка статуса внутри UPDATE отсекает гонку двух решений.
	if err := s.repo.UpdateBookingStatusIfWaiting(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}
	booking.Status = newStatus

	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("status", newStatus).
		Int64("owner_id", userID).
		Msg("booking decided")
	s.publishEvent(eventType, booking, userID)

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID, viewerID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}

	// Бронь видят только ее автор и владелец вещи.
	if viewerID != booking.BookerID && viewerID != item.OwnerID {
		return nil, database.ErrAccessDenied
	}
	return booking, nil
}

func (s *BookingService) GetBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState, p models.Pagination) ([]models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, bookerID); err != nil {
		return nil, err
	}
	return s.repo.GetBookingsByBooker(ctx, bookerID, state, time.Now(), p)
}

func (s *BookingService) GetBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState, p models.Pagination) ([]models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.GetBookingsByOwner(ctx, ownerID, state, time.Now(), p)
}

// LastAndNextForItems вычисляет для каждой вещи последнюю и ближайшую
// подтвержденные брони относительно now. Две выборки на весь список.
func (s *BookingService) LastAndNextForItems(ctx context.Context, items []models.Item, now time.Time) (map[int64]models.ItemBookings, error) {
	result := make(map[int64]models.ItemBookings, len(items))
	if len(items) == 0 {
		return result, nil
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	last, err := s.repo.GetLastBookings(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	next, err := s.repo.GetNextBookings(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}

	for _, id := range itemIDs {
		var slot models.ItemBookings
		if b, ok := last[id]; ok {
			lastCopy := b
			slot.Last = &lastCopy
		}
		if b, ok := next[id]; ok {
			nextCopy := b
			slot.Next = &nextCopy
		}
		result[id] = slot
	}
	return result, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, decidedBy int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		ItemName:  booking.ItemName,
		BookerID:  booking.BookerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
		DecidedBy: decidedBy,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
