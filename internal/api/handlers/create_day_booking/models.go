package create_day_booking

import (
	"github.com/m04kA/SMC-StudySlots/internal/domain"
	claimSlot "github.com/m04kA/SMC-StudySlots/internal/usecase/claim_slot"
)

// DetailRequest первая деталь дня
type DetailRequest struct {
	Lesson string `json:"lesson"`
	TV     bool   `json:"tv"`
	Group  string `json:"group"`
}

// CreateDayBookingRequest HTTP request model
type CreateDayBookingRequest struct {
	BookingDate string        `json:"bookingDate"` // "2026-10-20"
	Details     DetailRequest `json:"details"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateDayBookingRequest) ToUseCaseRequest(userID int64) (*claimSlot.Request, error) {
	date, err := domain.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &claimSlot.Request{
		UserID:      userID,
		BookingDate: date,
		Lesson:      r.Details.Lesson,
		TV:          r.Details.TV,
		Group:       r.Details.Group,
	}, nil
}
