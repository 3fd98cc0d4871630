package domain

import (
	"fmt"
	"time"
)

// ParseDate разбирает дату в формате YYYY-MM-DD (UTC)
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return date, nil
}

// DateKey ключ даты для кэшей и логов
func DateKey(date time.Time) string {
	return date.Format(DateFormat)
}

// TruncateDate отбрасывает время, оставляя календарную дату в UTC
func TruncateDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	return TruncateDate(date).Before(TruncateDate(now))
}

// SameDate проверяет, что две даты относятся к одному дню
func SameDate(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}
