package get_day_availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
	getDayAvailability "github.com/m04kA/SMC-StudySlots/internal/usecase/get_day_availability"
)

// SlotResponse состояние одного слота каталога
type SlotResponse struct {
	Lesson string                 `json:"lesson"`
	Title  string                 `json:"title"`
	TV     bool                   `json:"tv"`
	State  string                 `json:"state"` // "available" | "booked"
	Detail *models.DetailResponse `json:"detail,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date         string         `json:"date"`
	DayBookingID *uuid.UUID     `json:"dayBookingId,omitempty"`
	Slots        []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: make([]SlotResponse, len(resp.Slots)),
	}
	if resp.DayBookingID != uuid.Nil {
		id := resp.DayBookingID
		out.DayBookingID = &id
	}

	for i, s := range resp.Slots {
		out.Slots[i] = SlotResponse{
			Lesson: string(s.Slot.Lesson),
			Title:  s.Slot.Lesson.Title(),
			TV:     s.Slot.TV,
			State:  string(s.State),
		}
		if s.Detail != nil {
			detail := models.FromDomainDetail(s.Detail)
			out.Slots[i].Detail = &detail
		}
	}
	return out
}
