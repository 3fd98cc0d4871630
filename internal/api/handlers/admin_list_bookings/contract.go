package admin_list_bookings

import (
	"context"

	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
)

type BookingService interface {
	ListDays(ctx context.Context, req *models.ListDaysRequest) (*models.DayBookingPageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
