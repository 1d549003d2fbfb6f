package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		repo:   repo,
		logger: logger,
	}
}

func (s *RequestService) SaveRequest(ctx context.Context, description string, requesterID int64) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: description,
		RequesterID: requesterID,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("request_id", request.ID).Int64("requester_id", requesterID).Msg("item request created")
	return request, nil
}

func (s *RequestService) GetRequestsByRequester(ctx context.Context, requesterID int64) ([]models.RequestDetails, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.addItems(ctx, requests)
}

func (s *RequestService) GetAllRequests(ctx context.Context, requesterID int64, p models.Pagination) ([]models.RequestDetails, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetOtherRequests(ctx, requesterID, p)
	if err != nil {
		return nil, err
	}
	return s.addItems(ctx, requests)
}

func (s *RequestService) GetRequestByID(ctx context.Context, requestID, userID int64) (*models.RequestDetails, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	details := &models.RequestDetails{ItemRequest: *request, Items: []models.Item{}}
	if items != nil {
		details.Items = items
	}
	return details, nil
}

// addItems прикрепляет к запросам предложенные по ним вещи одной выборкой.
func (s *RequestService) addItems(ctx context.Context, requests []models.ItemRequest) ([]models.RequestDetails, error) {
	requestIDs := make([]int64, len(requests))
	for i, r := range requests {
		requestIDs[i] = r.ID
	}

	itemsByRequest, err := s.repo.GetItemsByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.RequestDetails, 0, len(requests))
	for _, r := range requests {
		d := models.RequestDetails{ItemRequest: r, Items: []models.Item{}}
		if items, ok := itemsByRequest[r.ID]; ok {
			d.Items = items
		}
		details = append(details, d)
	}
	return details, nil
}
