package append_detail

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudySlots/internal/api/handlers"
	"github.com/m04kA/SMC-StudySlots/internal/api/middleware"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
	claimSlot "github.com/m04kA/SMC-StudySlots/internal/usecase/claim_slot"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgInvalidInput       = "некорректные данные бронирования"
	msgPastDate           = "нельзя бронировать на прошедшую дату"
	msgNotFound           = "бронирование не найдено"
	msgSlotTaken          = "этот слот уже занят"
)

type Handler struct {
	useCase ClaimSlotUseCase
	logger  Logger
}

func NewHandler(useCase ClaimSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/details
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	dayID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/details - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AppendDetailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/details - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, dayID))
	if err != nil {
		switch {
		case errors.Is(err, claimSlot.ErrSlotTaken):
			h.logger.Warn("POST /bookings/{id}/details - Slot taken: day_id=%s, lesson=%s, tv=%t", dayID, req.Lesson, req.TV)
			handlers.RespondConflict(w, handlers.CodeSlotTaken, msgSlotTaken)

		case errors.Is(err, claimSlot.ErrDayNotFound):
			h.logger.Warn("POST /bookings/{id}/details - Day not found: day_id=%s", dayID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, claimSlot.ErrInvalidDate):
			h.logger.Warn("POST /bookings/{id}/details - Past date: day_id=%s, user_id=%d", dayID, userID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, claimSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/details - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondValidation(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/details - Failed to append detail: day_id=%s, user_id=%d, error=%v",
				dayID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/details - Detail appended: day_id=%s, detail_id=%s, user_id=%d",
		dayID, result.Detail.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainDetail(result.Detail))
}
