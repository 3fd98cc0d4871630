package workflow

import (
	"time"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

// Mode режим бронирования, выбирается один раз при создании контроллера
type Mode int

const (
	// ModeConfirmFirst выбор слота открывает форму подтверждения с названием группы
	ModeConfirmFirst Mode = iota
	// ModeImmediateClaim выбор слота сразу отправляет бронирование
	ModeImmediateClaim
)

func (m Mode) String() string {
	if m == ModeImmediateClaim {
		return "immediate_claim"
	}
	return "confirm_first"
}

// Phase фаза сценария бронирования
type Phase string

const (
	PhaseIdle                 Phase = "idle"
	PhaseLoading              Phase = "loading"
	PhaseReady                Phase = "ready"
	PhaseAwaitingConfirmation Phase = "awaiting_confirmation"
	PhaseSubmitting           Phase = "submitting"
	PhaseFailed               Phase = "failed"
)

// Notice неблокирующее уведомление для пользователя
type Notice struct {
	Kind    domain.ErrorKind
	Message string
	Date    time.Time
}

// View снимок состояния для отрисовки
type View struct {
	Mode         Mode
	Phase        Phase
	Date         time.Time
	HasDate      bool
	Day          *domain.DayBooking
	Availability []domain.AvailabilitySlot
	Selected     *domain.Slot
	Group        string
	Submitting   bool
	Err          error
}

// Сообщения для пользователя
const (
	msgPastDate          = "Нельзя бронировать прошедшую дату"
	msgGroupRequired     = "Укажите название группы"
	msgGroupTooLong      = "Название группы слишком длинное"
	msgSlotTaken         = "Этот слот уже занял другой пользователь, выберите другой"
	msgSlotTakenMeantime = "Выбранный слот успели занять, выберите другой"
	msgDayAlreadyExists  = "Бронирование на эту дату уже создано, отправьте ещё раз"
	msgValidation        = "Некорректные данные бронирования"
	msgNetwork           = "Сервис бронирования недоступен, попробуйте позже"
	msgAuth              = "Сессия истекла, войдите заново"
	msgUnknown           = "Не удалось выполнить операцию"
	msgBooked            = "Слот забронирован"
)
