package cancel_detail

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
	msgInvalidID    = "некорректный ID бронирования"
	msgUnauthorized = "требуется авторизация"
	msgNotFound     = "бронирование не найдено"
	msgForbidden    = "можно отменить только своё бронирование"
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

// Handle DELETE /api/v1/bookings/{bookingId}/details/{detailId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	dayID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id}/details/{detailId} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}
	detailID, err := uuid.Parse(vars["detailId"])
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id}/details/{detailId} - Invalid detail ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	err = h.service.CancelDetail(r.Context(), &models.CancelDetailRequest{
		UserID:       userID,
		DayBookingID: dayID,
		DetailID:     detailID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrDayNotFound), errors.Is(err, bookings.ErrDetailNotFound):
			h.logger.Warn("DELETE /bookings/{id}/details/{detailId} - Not found: day_id=%s, detail_id=%s", dayID, detailID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{id}/details/{detailId} - Access denied: detail_id=%s, user_id=%d", detailID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /bookings/{id}/details/{detailId} - Failed to cancel: detail_id=%s, error=%v", detailID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id}/details/{detailId} - Detail cancelled: detail_id=%s, user_id=%d", detailID, userID)
	w.WriteHeader(http.StatusNoContent)
}
