package workflow

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

var (
	// ErrBusy отправка бронирования ещё не завершена
	ErrBusy = errors.New("workflow: submission in progress")
	// ErrInvalidTransition операция недопустима в текущей фазе
	ErrInvalidTransition = errors.New("workflow: operation not allowed in current phase")
	// ErrNoDate дата ещё не выбрана
	ErrNoDate = errors.New("workflow: no date selected")
	// ErrSlotUnavailable слот занят или отсутствует в каталоге
	ErrSlotUnavailable = errors.New("workflow: slot is not available")

	// ErrPastDate дата раньше сегодняшней
	ErrPastDate = fmt.Errorf("%w: date is in the past", domain.ErrValidation)
	// ErrGroupRequired в режиме подтверждения группа обязательна
	ErrGroupRequired = fmt.Errorf("%w: group name is required", domain.ErrValidation)
	// ErrGroupTooLong название группы длиннее допустимого
	ErrGroupTooLong = fmt.Errorf("%w: group name is too long", domain.ErrValidation)
)
