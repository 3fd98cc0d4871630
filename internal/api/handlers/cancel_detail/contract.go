package cancel_detail

import (
	"context"

	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
)

type BookingService interface {
	CancelDetail(ctx context.Context, req *models.CancelDetailRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
