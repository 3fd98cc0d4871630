package bookings

import "errors"

var (
	// ErrDayNotFound возвращается, когда на дату нет бронирований
	ErrDayNotFound = errors.New("day booking not found")

	// ErrDetailNotFound возвращается, когда деталь бронирования не найдена
	ErrDetailNotFound = errors.New("booking detail not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
