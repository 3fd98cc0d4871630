package claim_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("claim_slot: invalid input data")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("claim_slot: invalid booking date")

	// ErrDayNotFound возвращается, когда день для добавления детали не найден
	ErrDayNotFound = errors.New("claim_slot: day booking not found")

	// ErrDayAlreadyExists возвращается, когда на дату уже создан день
	ErrDayAlreadyExists = errors.New("claim_slot: day booking already exists")

	// ErrSlotTaken возвращается, когда (lesson, tv) уже занят
	ErrSlotTaken = errors.New("claim_slot: slot already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("claim_slot: internal error")
)
