package append_detail

import (
	"github.com/google/uuid"

	claimSlot "github.com/m04kA/SMC-StudySlots/internal/usecase/claim_slot"
)

// AppendDetailRequest HTTP request model
type AppendDetailRequest struct {
	Lesson string `json:"lesson"`
	TV     bool   `json:"tv"`
	Group  string `json:"group"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AppendDetailRequest) ToUseCaseRequest(userID int64, dayBookingID uuid.UUID) *claimSlot.Request {
	return &claimSlot.Request{
		UserID:       userID,
		DayBookingID: dayBookingID,
		Lesson:       r.Lesson,
		TV:           r.TV,
		Group:        r.Group,
	}
}
