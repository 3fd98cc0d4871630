package create_day_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudySlots/internal/api/handlers"
	"github.com/m04kA/SMC-StudySlots/internal/api/middleware"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
	claimSlot "github.com/m04kA/SMC-StudySlots/internal/usecase/claim_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgUnauthorized       = "требуется авторизация"
	msgInvalidInput       = "некорректные данные бронирования"
	msgPastDate           = "нельзя бронировать на прошедшую дату"
	msgDayExists          = "на эту дату уже есть бронирования, обновите страницу"
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

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateDayBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid booking date %q: %v", req.BookingDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, claimSlot.ErrDayAlreadyExists):
			h.logger.Warn("POST /bookings - Day already exists: date=%s, user_id=%d", req.BookingDate, userID)
			handlers.RespondConflict(w, handlers.CodeDayExists, msgDayExists)

		case errors.Is(err, claimSlot.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: date=%s, lesson=%s, tv=%t", req.BookingDate, req.Details.Lesson, req.Details.TV)
			handlers.RespondConflict(w, handlers.CodeSlotTaken, msgSlotTaken)

		case errors.Is(err, claimSlot.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Past date: date=%s, user_id=%d", req.BookingDate, userID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, claimSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondValidation(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create day booking: date=%s, user_id=%d, error=%v",
				req.BookingDate, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Day booking created: day_id=%s, detail_id=%s, user_id=%d",
		result.Day.ID, result.Detail.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainDayBooking(result.Day))
}
