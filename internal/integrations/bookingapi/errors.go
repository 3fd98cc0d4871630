package bookingapi

import "errors"

var (
	// ErrInvalidResponse возвращается при неожиданном ответе сервиса бронирований
	ErrInvalidResponse = errors.New("bookingapi: invalid response")

	// ErrInternal возвращается при ошибке формирования запроса
	ErrInternal = errors.New("bookingapi: internal error")
)
