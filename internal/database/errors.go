package database

import "errors"

// Ошибки доменной валидации. Слой API переводит их в HTTP-статусы,
// сервисы и хранилище различают их через errors.Is.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrItemUnavailable = errors.New("item is not available for booking")
	ErrOwnItemBooking  = errors.New("booking own item is forbidden")
	ErrWrongDate       = errors.New("invalid booking date range")
	ErrAlreadyDecided  = errors.New("booking is already decided")
	ErrNotOwner        = errors.New("user is not the item owner")
	ErrAccessDenied    = errors.New("access denied")
	ErrEmailTaken      = errors.New("email is already in use")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrNoPastBooking   = errors.New("user has no finished booking of the item")
)
