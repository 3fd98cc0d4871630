package claim_slot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/integrations/events"
	"github.com/m04kA/SMC-StudySlots/internal/integrations/userservice"
)

// DayBookingRepository интерфейс репозитория дней бронирования
type DayBookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DayBooking, error)
	CreateDay(ctx context.Context, date time.Time) (*domain.DayBooking, error)
	AddDetail(ctx context.Context, detail *domain.BookingDetail) (*domain.BookingDetail, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Profile, error)
}

// EventPublisher интерфейс издателя событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// ClaimMetrics интерфейс для учёта результатов бронирования
type ClaimMetrics interface {
	RecordClaim(result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
