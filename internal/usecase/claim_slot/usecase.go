package claim_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	dayBookingRepo "github.com/m04kA/SMC-StudySlots/internal/infra/storage/daybooking"
	"github.com/m04kA/SMC-StudySlots/internal/integrations/events"
	userClient "github.com/m04kA/SMC-StudySlots/internal/integrations/userservice"
	"github.com/m04kA/SMC-StudySlots/pkg/metrics"
	"github.com/m04kA/SMC-StudySlots/pkg/txmanager"
)

// UseCase use case для бронирования слота (создание дня или добавление детали)
type UseCase struct {
	repo         DayBookingRepository
	userClient   UserServiceClient
	publisher    EventPublisher
	metrics      ClaimMetrics
	txManager    TransactionManager
	timeProvider TimeProvider
	validate     *validator.Validate
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo DayBookingRepository,
	userClient UserServiceClient,
	publisher EventPublisher,
	claimMetrics ClaimMetrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:         repo,
		userClient:   userClient,
		publisher:    publisher,
		metrics:      claimMetrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		validate:     newValidator(),
		logger:       logger,
	}
}

// Execute выполняет use case бронирования слота
// Использует сериализуемую транзакцию: уникальность (дата) и (день, lesson, tv) гарантирует БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ClaimSlot: user=%d, date=%s, day=%s, lesson=%s, tv=%t",
		req.UserID, req.BookingDate.Format(domain.DateFormat), req.DayBookingID, req.Lesson, req.TV)

	// 1. Валидация входных данных
	if err := validateRequest(uc.validate, req); err != nil {
		uc.logger.Warn("ClaimSlot: validation failed: %v", err)
		uc.metrics.RecordClaim(metrics.ClaimResultRejected)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if !req.IsAppend() {
		if err := validateDate(req.BookingDate, now); err != nil {
			uc.logger.Warn("ClaimSlot: %v", err)
			uc.metrics.RecordClaim(metrics.ClaimResultRejected)
			return nil, err
		}
	}

	// 2. Получаем данные пользователя для денормализации (graceful degradation)
	occupant := uc.resolveOccupant(ctx, req.UserID)

	detail := &domain.BookingDetail{
		Lesson:   domain.Lesson(req.Lesson),
		TV:       req.TV,
		Group:    req.Group,
		Occupant: occupant,
	}

	var (
		day     *domain.DayBooking
		created bool
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		if req.IsAppend() {
			day, err = uc.lockDay(txCtx, req.DayBookingID, detail.Slot(), now)
		} else {
			day, err = uc.createDay(txCtx, req.BookingDate)
			created = err == nil
		}
		if err != nil {
			return err
		}

		detail.DayBookingID = day.ID
		saved, err := uc.repo.AddDetail(txCtx, detail)
		if err != nil {
			if errors.Is(err, dayBookingRepo.ErrSlotTaken) {
				uc.logger.Warn("ClaimSlot: slot %s tv=%t on %s already taken", detail.Lesson, detail.TV, domain.DateKey(day.BookingDate))
				return ErrSlotTaken
			}
			if errors.Is(err, dayBookingRepo.ErrDayNotFound) {
				return ErrDayNotFound
			}
			uc.logger.Error("ClaimSlot: failed to add detail: %v", err)
			return fmt.Errorf("%w: failed to add detail: %v", ErrInternal, err)
		}

		day.Details = append(day.Details, *saved)
		return nil
	})

	if err != nil {
		err = uc.mapTxError(req, err)
		uc.metrics.RecordClaim(claimResult(err))
		return nil, err
	}

	result := metrics.ClaimResultAppended
	if created {
		result = metrics.ClaimResultCreated
	}
	uc.metrics.RecordClaim(result)

	uc.logger.Info("ClaimSlot: user=%d booked %s tv=%t on %s (day=%s, detail=%s)",
		req.UserID, detail.Lesson, detail.TV, domain.DateKey(day.BookingDate), day.ID, detail.ID)

	// 4. Публикуем событие после коммита, ошибка публикации не отменяет бронирование
	event := events.NewSlotEvent(events.TypeSlotClaimed, day.BookingDate, detail, now)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("ClaimSlot: failed to publish event for detail=%s: %v", detail.ID, err)
	}

	return &Response{
		Created: created,
		Day:     day,
		Detail:  detail,
	}, nil
}

// createDay создает день на дату
func (uc *UseCase) createDay(ctx context.Context, date time.Time) (*domain.DayBooking, error) {
	day, err := uc.repo.CreateDay(ctx, date)
	if err != nil {
		if errors.Is(err, dayBookingRepo.ErrDayExists) {
			uc.logger.Warn("ClaimSlot: day booking for %s already exists", domain.DateKey(date))
			return nil, ErrDayAlreadyExists
		}
		uc.logger.Error("ClaimSlot: failed to create day booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create day booking: %v", ErrInternal, err)
	}
	return day, nil
}

// lockDay получает день с блокировкой строки и проверяет, что слот свободен и дата не прошла
func (uc *UseCase) lockDay(ctx context.Context, id uuid.UUID, slot domain.Slot, now time.Time) (*domain.DayBooking, error) {
	day, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dayBookingRepo.ErrDayNotFound) {
			uc.logger.Warn("ClaimSlot: day booking id=%s not found", id)
			return nil, ErrDayNotFound
		}
		uc.logger.Error("ClaimSlot: failed to get day booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get day booking: %v", ErrInternal, err)
	}

	if err := validateDate(day.BookingDate, now); err != nil {
		uc.logger.Warn("ClaimSlot: %v", err)
		return nil, err
	}

	if _, taken := day.FindDetail(slot); taken {
		uc.logger.Warn("ClaimSlot: slot %s tv=%t on %s already taken", slot.Lesson, slot.TV, domain.DateKey(day.BookingDate))
		return nil, ErrSlotTaken
	}

	return day, nil
}

// mapTxError переводит ошибки фиксации транзакции в ошибки use case.
// Конфликт сериализации при коммите означает, что конкурент занял слот или создал день раньше.
func (uc *UseCase) mapTxError(req *Request, err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("ClaimSlot: concurrent claim on commit (day=%s, date=%s): %v",
			req.DayBookingID, req.BookingDate.Format(domain.DateFormat), err)
		if req.IsAppend() {
			return ErrSlotTaken
		}
		return ErrDayAlreadyExists
	case errors.Is(err, txmanager.ErrCommitTx), errors.Is(err, txmanager.ErrBeginTx):
		uc.logger.Error("ClaimSlot: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	default:
		return err
	}
}

// resolveOccupant получает имя пользователя; при недоступности UserService сохраняется только ID
func (uc *UseCase) resolveOccupant(ctx context.Context, userID int64) domain.UserRef {
	occupant := domain.UserRef{ID: userID}

	profile, err := uc.userClient.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrServiceDegraded) || errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("ClaimSlot: occupant user=%d stored without profile: %v", userID, err)
			return occupant
		}
		uc.logger.Error("ClaimSlot: failed to get profile for user=%d: %v", userID, err)
		return occupant
	}

	occupant.FirstName = profile.FirstName
	occupant.SecondName = profile.SecondName
	occupant.IsTeacher = profile.IsTeacher()
	return occupant
}

func claimResult(err error) string {
	switch {
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrDayAlreadyExists):
		return metrics.ClaimResultTaken
	case errors.Is(err, ErrInternal):
		return metrics.ClaimResultError
	default:
		return metrics.ClaimResultRejected
	}
}
