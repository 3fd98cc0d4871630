package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/integrations/events"
)

// DayBookingRepository интерфейс репозитория дней бронирования
type DayBookingRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.DayBooking, error)
	GetDetail(ctx context.Context, dayBookingID, detailID uuid.UUID) (*domain.BookingDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DayBooking, error)
	DeleteDetail(ctx context.Context, dayBookingID, detailID uuid.UUID) error
	ListDetailsByUser(ctx context.Context, userID int64) ([]domain.MyDetail, error)
	ListDays(ctx context.Context, page domain.Page) ([]*domain.DayBooking, int, error)
}

// EventPublisher интерфейс издателя событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// ReleaseMetrics интерфейс для учёта освобождённых слотов
type ReleaseMetrics interface {
	RecordRelease()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
