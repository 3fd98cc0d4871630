package create_day_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudySlots/internal/api/handlers"
	"github.com/m04kA/SMC-StudySlots/internal/api/middleware"
	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
	claimSlot "github.com/m04kA/SMC-StudySlots/internal/usecase/claim_slot"
	"github.com/m04kA/SMC-StudySlots/pkg/logger"
)

type fakeUseCase struct {
	got *claimSlot.Request
	err error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *claimSlot.Request) (*claimSlot.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	dayID := uuid.New()
	detail := &domain.BookingDetail{
		ID: uuid.New(), DayBookingID: dayID, Lesson: domain.Lesson(req.Lesson), TV: req.TV, Group: req.Group,
		Occupant: domain.UserRef{ID: req.UserID},
	}
	return &claimSlot.Response{
		Created: true,
		Day:     &domain.DayBooking{ID: dayID, BookingDate: req.BookingDate, Details: []domain.BookingDetail{*detail}},
		Detail:  detail,
	}, nil
}

func post(uc ClaimSlotUseCase, body string, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if authenticated {
		req = req.WithContext(middleware.WithUser(req.Context(), 42, ""))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

const validBody = `{"bookingDate":"2026-10-20","details":{"lesson":"LESSON1","tv":true,"group":"ИУ7-61Б"}}`

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}

	rec := post(uc, validBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(42), uc.got.UserID)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), uc.got.BookingDate)
	assert.Equal(t, "LESSON1", uc.got.Lesson)

	var body models.DayBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2026-10-20", body.BookingDate)
	require.Len(t, body.Details, 1)
	assert.Equal(t, int64(42), body.Details[0].User.ID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"day exists", validBody, claimSlot.ErrDayAlreadyExists, http.StatusConflict, handlers.CodeDayExists},
		{"slot taken", validBody, claimSlot.ErrSlotTaken, http.StatusConflict, handlers.CodeSlotTaken},
		{"past date", validBody, claimSlot.ErrInvalidDate, http.StatusBadRequest, handlers.CodeBadRequest},
		{"invalid input", validBody, fmt.Errorf("%w: lesson", claimSlot.ErrInvalidInput), http.StatusUnprocessableEntity, handlers.CodeValidation},
		{"internal", validBody, errors.New("boom"), http.StatusInternalServerError, handlers.CodeInternal},
		{"malformed body", `{"bookingDate":`, nil, http.StatusBadRequest, handlers.CodeBadRequest},
		{"unknown field", `{"bookingDate":"2026-10-20","userId":1}`, nil, http.StatusBadRequest, handlers.CodeBadRequest},
		{"bad date", `{"bookingDate":"20.10.2026","details":{"lesson":"LESSON1"}}`, nil, http.StatusBadRequest, handlers.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeUseCase{err: tt.err}, tt.body, true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandle_RequiresUser(t *testing.T) {
	uc := &fakeUseCase{}

	rec := post(uc, validBody, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
