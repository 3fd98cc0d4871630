package get_day_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudySlots/internal/api/handlers"
	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound    = "на эту дату бронирований нет"
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

// Handle GET /api/v1/bookings/date/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /bookings/date/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	day, err := h.service.GetDay(r.Context(), date)
	if err != nil {
		if errors.Is(err, bookings.ErrDayNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /bookings/date/{date} - Failed to get day booking: date=%s, error=%v", domain.DateKey(date), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/date/{date} - Day booking retrieved: date=%s, details=%d", day.BookingDate, len(day.Details))
	handlers.RespondJSON(w, http.StatusOK, day)
}
