package models

import "time"

// ItemRequest — запрос на вещь, которой еще нет в списке.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// RequestDetails is a request with the items offered in response to it.
type RequestDetails struct {
	ItemRequest
	Items []Item `json:"items"`
}
