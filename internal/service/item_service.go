package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	bookings domain.BookingService
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, bookings domain.BookingService, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		bookings: bookings,
		logger:   logger,
	}
}

func (s *ItemService) SaveItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, item.OwnerID); err != nil {
		return nil, err
	}
	if item.RequestID != 0 {
		if _, err := s.repo.GetRequestByID(ctx, item.RequestID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", item.OwnerID).Msg("item created")
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, itemID, userID int64, patch models.ItemPatch) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, database.ErrNotOwner
	}

	// Пустые поля не меняются
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		item.Name = *patch.Name
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItemByID возвращает вещь с отзывами. Последнюю и ближайшую брони
// видит только владелец.
func (s *ItemService) GetItemByID(ctx context.Context, itemID, viewerID int64) (*models.ItemDetails, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := &models.ItemDetails{Item: *item, Comments: []models.Comment{}}

	if viewerID == item.OwnerID {
		slots, err := s.bookings.LastAndNextForItems(ctx, []models.Item{*item}, time.Now())
		if err != nil {
			return nil, err
		}
		slot := slots[item.ID]
		details.LastBooking = slot.Last
		details.NextBooking = slot.Next
	}

	comments, err := s.repo.GetCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if comments != nil {
		details.Comments = comments
	}
	return details, nil
}

// GetItemsByOwner возвращает вещи владельца со слотами last/next и отзывами.
// Три выборки на весь список вместо N+1.
func (s *ItemService) GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.ItemDetails, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	slots, err := s.bookings.LastAndNextForItems(ctx, items, now)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}
	comments, err := s.repo.GetCommentsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.ItemDetails, 0, len(items))
	for _, item := range items {
		d := models.ItemDetails{Item: item, Comments: []models.Comment{}}
		slot := slots[item.ID]
		d.LastBooking = slot.Last
		d.NextBooking = slot.Next
		if list, ok := comments[item.ID]; ok {
			d.Comments = list
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *ItemService) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	return s.repo.SearchItems(ctx, text)
}

// SaveComment сохраняет отзыв. Разрешено только тем, чья бронь этой вещи
// завершилась до текущего момента.
func (s *ItemService) SaveComment(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error) {
	now := time.Now()

	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	used, err := s.repo.HasFinishedBooking(ctx, author.ID, item.ID, now)
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, database.ErrNoPastBooking
	}

	comment := &models.Comment{
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       text,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
