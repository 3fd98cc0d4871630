package get_day_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

// Request модель запроса на получение занятости слотов
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа с занятостью всех слотов каталога
type Response struct {
	Date         time.Time                 // Дата, на которую запрашивались слоты
	DayBookingID uuid.UUID                 // ID дня, uuid.Nil если бронирований ещё нет
	Slots        []domain.AvailabilitySlot // Слоты в порядке каталога
}
