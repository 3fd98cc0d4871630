package get_day_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
)

type BookingService interface {
	GetDay(ctx context.Context, date time.Time) (*models.DayBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
