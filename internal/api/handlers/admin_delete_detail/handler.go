package admin_delete_detail

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudySlots/internal/api/handlers"
	"github.com/m04kA/SMC-StudySlots/internal/api/middleware"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
)

const (
	msgInvalidID = "некорректный ID бронирования"
	msgNotFound  = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/bookings/{bookingId}/details/{detailId}
// Доступ проверяет middleware.AdminOnly
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.GetUserID(r.Context())

	vars := mux.Vars(r)
	dayID, errDay := uuid.Parse(vars["bookingId"])
	detailID, errDetail := uuid.Parse(vars["detailId"])
	if errDay != nil || errDetail != nil {
		h.logger.Warn("DELETE /admin/bookings/{id}/details/{detailId} - Invalid IDs: %q, %q", vars["bookingId"], vars["detailId"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	err := h.service.CancelDetail(r.Context(), &models.CancelDetailRequest{
		UserID:       adminID,
		IsAdmin:      true,
		DayBookingID: dayID,
		DetailID:     detailID,
	})
	if err != nil {
		if errors.Is(err, bookings.ErrDayNotFound) || errors.Is(err, bookings.ErrDetailNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/bookings/{id}/details/{detailId} - Failed to delete: detail_id=%s, error=%v", detailID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id}/details/{detailId} - Detail deleted by admin=%d: detail_id=%s", adminID, detailID)
	w.WriteHeader(http.StatusNoContent)
}
