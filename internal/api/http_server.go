package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// HeaderUserID — идентификатор пользователя, от имени которого идет запрос.
const HeaderUserID = "X-Sharer-User-Id"

// HTTPServer validates incoming requests and translates domain errors to
// HTTP statuses. All business rules live in the services behind it.
type HTTPServer struct {
	cfg      *config.Config
	users    domain.UserService
	items    domain.ItemService
	bookings domain.BookingService
	requests domain.RequestService
	reporter BookingReporter
	limits   domain.RateLimitRepository
	logger   *zerolog.Logger
	server   *http.Server
	limiters sync.Map // map[string]*rate.Limiter
}

// BookingReporter builds an owner booking report file.
type BookingReporter interface {
	ExportOwnerBookings(ctx context.Context, ownerID int64) (string, error)
}

func NewHTTPServer(
	cfg *config.Config,
	users domain.UserService,
	items domain.ItemService,
	bookings domain.BookingService,
	requests domain.RequestService,
	reporter BookingReporter,
	limits domain.RateLimitRepository,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		reporter: reporter,
		limits:   limits,
		logger:   logger,
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler собирает роутер с middleware. Выделен отдельно для тестов.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleGetAllUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("GET /items", s.handleGetItemsByOwner)
	mux.HandleFunc("GET /items/search", s.handleSearchItems)
	mux.HandleFunc("GET /items/report", s.handleBookingReport)
	mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	mux.HandleFunc("POST /items/{id}/comment", s.handleCreateComment)

	mux.HandleFunc("POST /bookings", s.handleCreateBooking)
	mux.HandleFunc("PATCH /bookings/{id}", s.handleApproveBooking)
	mux.HandleFunc("GET /bookings", s.handleGetBookingsByBooker)
	mux.HandleFunc("GET /bookings/owner", s.handleGetBookingsByOwner)
	mux.HandleFunc("GET /bookings/{id}", s.handleGetBooking)

	mux.HandleFunc("POST /requests", s.handleCreateRequest)
	mux.HandleFunc("GET /requests", s.handleGetOwnRequests)
	mux.HandleFunc("GET /requests/all", s.handleGetAllRequests)
	mux.HandleFunc("GET /requests/{id}", s.handleGetRequest)

	return s.loggingMiddleware(s.rateLimitMiddleware(mux))
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError переводит вид доменной ошибки в HTTP-статус.
func (s *HTTPServer) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrItemUnavailable),
		errors.Is(err, database.ErrOwnItemBooking),
		errors.Is(err, database.ErrWrongDate),
		errors.Is(err, database.ErrInvalidEmail),
		errors.Is(err, database.ErrNoPastBooking),
		errors.Is(err, database.ErrAlreadyDecided),
		errors.Is(err, models.ErrUnsupportedState):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrNotOwner),
		errors.Is(err, database.ErrAccessDenied):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, database.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
