package models

const (
	StatusWaiting  = "waiting"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	// DefaultPaginationFrom начало выборки по умолчанию
	DefaultPaginationFrom = 0

	// DefaultPaginationSize размер страницы по умолчанию
	DefaultPaginationSize = 10

	// RateLimitRequests количество запросов в окне на пользователя
	RateLimitRequests = 30

	// RateLimitWindow окно ограничения частоты запросов в секундах
	RateLimitWindow = 60
)
