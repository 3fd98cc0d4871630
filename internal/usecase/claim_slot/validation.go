package claim_slot

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

// newValidator создает валидатор с правилом lesson
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("lesson", validateLesson); err != nil {
		panic(fmt.Sprintf("claim_slot: register lesson validator: %v", err))
	}
	return v
}

func validateLesson(fl validator.FieldLevel) bool {
	return domain.Lesson(fl.Field().String()).Valid()
}

// validateRequest валидирует входные данные запроса
func validateRequest(v *validator.Validate, req *Request) error {
	req.Group = strings.TrimSpace(req.Group)

	if err := v.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !req.IsAppend() && req.BookingDate.IsZero() {
		return fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date, now time.Time) error {
	if domain.IsDateInPast(date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, domain.DateKey(date))
	}
	return nil
}
