package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Repository — поверхность хранилища, которую видят сервисы.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	SearchItems(ctx context.Context, text string) ([]models.Item, error)
	GetItemsByRequestID(ctx context.Context, requestID int64) ([]models.Item, error)
	GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]models.Item, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusIfWaiting(ctx context.Context, id int64, status string) error
	GetBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState, now time.Time, p models.Pagination) ([]models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState, now time.Time, p models.Pagination) ([]models.Booking, error)
	GetLastBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]models.Booking, error)
	GetNextBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]models.Booking, error)
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)
	GetCommentsByItems(ctx context.Context, itemIDs []int64) (map[int64][]models.Comment, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error)
	GetOtherRequests(ctx context.Context, requesterID int64, p models.Pagination) ([]models.ItemRequest, error)
}

// RateLimitRepository считает запросы пользователя в скользящем окне.
type RateLimitRepository interface {
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, itemID int64, start, end time.Time, bookerID int64) (*models.Booking, error)
	ApproveBooking(ctx context.Context, bookingID int64, approved bool, userID int64) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, viewerID int64) (*models.Booking, error)
	GetBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState, p models.Pagination) ([]models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState, p models.Pagination) ([]models.Booking, error)
	LastAndNextForItems(ctx context.Context, items []models.Item, now time.Time) (map[int64]models.ItemBookings, error)
}

type ItemService interface {
	SaveItem(ctx context.Context, item *models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, itemID, userID int64, patch models.ItemPatch) (*models.Item, error)
	GetItemByID(ctx context.Context, itemID, viewerID int64) (*models.ItemDetails, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.ItemDetails, error)
	SearchItems(ctx context.Context, text string) ([]models.Item, error)
	SaveComment(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error)
}

type UserService interface {
	SaveUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type RequestService interface {
	SaveRequest(ctx context.Context, description string, requesterID int64) (*models.ItemRequest, error)
	GetRequestsByRequester(ctx context.Context, requesterID int64) ([]models.RequestDetails, error)
	GetAllRequests(ctx context.Context, requesterID int64, p models.Pagination) ([]models.RequestDetails, error)
	GetRequestByID(ctx context.Context, requestID, userID int64) (*models.RequestDetails, error)
}
