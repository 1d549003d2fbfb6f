package models

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	// RequestID связывает вещь с запросом, по которому она создана. 0 — без запроса.
	RequestID int64 `json:"request_id,omitempty"`
}

// ItemPatch describes a partial item update. Nil fields stay unchanged.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemDetails is an item extended with display data: last/next approved
// booking (owner only) and all comments.
type ItemDetails struct {
	Item
	LastBooking *Booking  `json:"last_booking,omitempty"`
	NextBooking *Booking  `json:"next_booking,omitempty"`
	Comments    []Comment `json:"comments"`
}

// ItemBookings holds the last/next slot pair computed per item.
// Either pointer may be nil when no approved booking matches.
type ItemBookings struct {
	Last *Booking
	Next *Booking
}
