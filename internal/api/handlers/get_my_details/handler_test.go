package get_my_details

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudySlots/internal/api/middleware"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudySlots/pkg/logger"
)

type fakeService struct {
	gotUserID int64
	err       error
}

func (f *fakeService) GetUserDetails(ctx context.Context, userID int64) (*models.MyDetailListResponse, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.MyDetailListResponse{Details: []models.MyDetailResponse{
		{DetailResponse: models.DetailResponse{Lesson: "LESSON2"}, BookingDate: "2026-10-20"},
	}}, nil
}

func get(svc BookingService, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/details/my", nil)
	if userID != 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, ""))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}

	rec := get(svc, 7)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.gotUserID)

	var raw map[string][]map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	require.Len(t, raw["details"], 1)
	assert.Equal(t, "2026-10-20", raw["details"][0]["bookingDate"])
	assert.Equal(t, "LESSON2", raw["details"][0]["lesson"])
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, get(&fakeService{}, 0).Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: errors.New("db")}, 7).Code)
}
