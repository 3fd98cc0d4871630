package get_day_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

// DayBookingRepository интерфейс репозитория дней бронирования
type DayBookingRepository interface {
	// GetByDate получает день со всеми деталями
	GetByDate(ctx context.Context, date time.Time) (*domain.DayBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
