package claim_slot

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

// Request модель запроса на бронирование слота
// Если DayBookingID пустой, создаётся новый день на BookingDate, иначе деталь добавляется в существующий
type Request struct {
	UserID       int64     `validate:"gt=0"`
	BookingDate  time.Time // Дата для создания дня
	DayBookingID uuid.UUID // ID существующего дня
	Lesson       string    `validate:"required,lesson"`
	TV           bool
	Group        string `validate:"max=64"`
}

// IsAppend проверяет, что деталь добавляется в существующий день
func (r *Request) IsAppend() bool {
	return r.DayBookingID != uuid.Nil
}

// Response модель ответа с занятым слотом
type Response struct {
	Created bool                  // true, если день был создан этим запросом
	Day     *domain.DayBooking    // День со всеми деталями после бронирования
	Detail  *domain.BookingDetail // Созданная деталь
}
