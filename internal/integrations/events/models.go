package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

// Типы событий бронирования
const (
	TypeSlotClaimed  = "slot.claimed"
	TypeSlotReleased = "slot.released"
)

// BookingEvent событие об изменении занятости слота
type BookingEvent struct {
	ID           uuid.UUID     `json:"id"`
	Type         string        `json:"type"`
	DayBookingID uuid.UUID     `json:"day_booking_id"`
	DetailID     uuid.UUID     `json:"detail_id"`
	BookingDate  string        `json:"booking_date"`
	Lesson       domain.Lesson `json:"lesson"`
	TV           bool          `json:"tv"`
	Group        string        `json:"group,omitempty"`
	UserID       int64         `json:"user_id"`
	OccurredAt   time.Time     `json:"occurred_at"`
}

// NewSlotEvent собирает событие по детали бронирования
func NewSlotEvent(eventType string, date time.Time, detail *domain.BookingDetail, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		ID:           uuid.New(),
		Type:         eventType,
		DayBookingID: detail.DayBookingID,
		DetailID:     detail.ID,
		BookingDate:  domain.DateKey(date),
		Lesson:       detail.Lesson,
		TV:           detail.TV,
		Group:        detail.Group,
		UserID:       detail.Occupant.ID,
		OccurredAt:   occurredAt.UTC(),
	}
}
