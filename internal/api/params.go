package api

import (
	"fmt"
	"net/http"
	"strconv"

	"shareit/internal/models"
)

// userIDFromHeader читает X-Sharer-User-Id. Заголовок обязателен для всех
// операций, выполняемых от имени пользователя.
func userIDFromHeader(r *http.Request) (int64, error) {
	raw := r.Header.Get(HeaderUserID)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s header", HeaderUserID)
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// paginationFromQuery разбирает from/size с дефолтами. Отрицательный from и
// неположительный size отклоняются.
func paginationFromQuery(r *http.Request) (models.Pagination, error) {
	p := models.Pagination{
		From: models.DefaultPaginationFrom,
		Size: models.DefaultPaginationSize,
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return p, fmt.Errorf("invalid from parameter %q", raw)
		}
		p.From = from
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return p, fmt.Errorf("invalid size parameter %q", raw)
		}
		p.Size = size
	}

	return p, nil
}

func stateFromQuery(r *http.Request) (models.BookingState, error) {
	raw := r.URL.Query().Get("state")
	if raw == "" {
		return models.StateAll, nil
	}
	return models.ParseBookingState(raw)
}
