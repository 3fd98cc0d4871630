package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

// DayBookingQuery получение бронирований на дату
// Возвращает domain.ErrDayNotFound, если на дату ещё нет DayBooking
type DayBookingQuery interface {
	GetDayBooking(ctx context.Context, date time.Time) (*domain.DayBooking, error)
}

// DayBookingMutation создание дня и добавление деталей
type DayBookingMutation interface {
	CreateDayBooking(ctx context.Context, date time.Time, draft domain.DetailDraft) (*domain.DayBooking, error)
	AppendDetail(ctx context.Context, dayBookingID uuid.UUID, draft domain.DetailDraft) (*domain.BookingDetail, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
