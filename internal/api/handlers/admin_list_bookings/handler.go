package admin_list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StudySlots/internal/api/handlers"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
)

const (
	msgInvalidPagination = "некорректные параметры пагинации"
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

// Handle GET /api/v1/admin/bookings?page=&take=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page, errPage := queryInt(r, "page")
	take, errTake := queryInt(r, "take")
	if errPage != nil || errTake != nil {
		h.logger.Warn("GET /admin/bookings - Invalid pagination: page=%q, take=%q",
			r.URL.Query().Get("page"), r.URL.Query().Get("take"))
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	result, err := h.service.ListDays(r.Context(), &models.ListDaysRequest{Page: page, Take: take})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidPagination)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to list day bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Retrieved %d of %d day bookings (page=%d)", len(result.Bookings), result.Total, result.Page)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// queryInt читает необязательный целый параметр, пустой параметр даёт 0
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
