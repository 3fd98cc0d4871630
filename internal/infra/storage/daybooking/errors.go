package daybooking

import "errors"

var (
	// ErrDayNotFound возвращается, когда день бронирования не найден
	ErrDayNotFound = errors.New("daybooking.repository: day booking not found")

	// ErrDetailNotFound возвращается, когда деталь бронирования не найдена
	ErrDetailNotFound = errors.New("daybooking.repository: booking detail not found")

	// ErrDayExists возвращается, когда на дату уже есть день бронирования
	ErrDayExists = errors.New("daybooking.repository: day booking already exists")

	// ErrSlotTaken возвращается, когда (lesson, tv) в дне уже занят
	ErrSlotTaken = errors.New("daybooking.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("daybooking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("daybooking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("daybooking.repository: failed to scan row")
)
