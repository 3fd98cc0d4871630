package get_my_details

import (
	"context"

	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
)

type BookingService interface {
	GetUserDetails(ctx context.Context, userID int64) (*models.MyDetailListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
