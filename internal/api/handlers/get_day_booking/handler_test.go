package get_day_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudySlots/internal/api/handlers"
	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudySlots/pkg/logger"
)

type fakeService struct {
	day *models.DayBookingResponse
	err error
}

func (f *fakeService) GetDay(ctx context.Context, date time.Time) (*models.DayBookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.day == nil || f.day.BookingDate != domain.DateKey(date) {
		return nil, bookings.ErrDayNotFound
	}
	return f.day, nil
}

func serve(svc BookingService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/date/{date}", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{day: &models.DayBookingResponse{
		ID:          uuid.New(),
		BookingDate: "2026-10-20",
		Details:     []models.DetailResponse{{Lesson: "LESSON1", TV: true}},
	}}

	rec := serve(svc, "/api/v1/bookings/date/2026-10-20")
	require.Equal(t, http.StatusOK, rec.Code)
	var body models.DayBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, svc.day.ID, body.ID)
	assert.Len(t, body.Details, 1)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeService
		path       string
		wantStatus int
		wantCode   string
	}{
		{"empty day", &fakeService{}, "/api/v1/bookings/date/2026-10-21", http.StatusNotFound, handlers.CodeNotFound},
		{"bad date", &fakeService{}, "/api/v1/bookings/date/20-10-2026", http.StatusBadRequest, handlers.CodeBadRequest},
		{"service failure", &fakeService{err: errors.New("db down")}, "/api/v1/bookings/date/2026-10-20", http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(tt.svc, tt.path)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
