package domain

// Форматы даты и времени
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ограничения бизнес-валидации
const (
	MaxGroupLength = 64
	MaxPageSize    = 100
	DefaultPage    = 1
	DefaultTake    = 10
)
