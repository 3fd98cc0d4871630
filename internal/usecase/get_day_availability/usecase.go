package get_day_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	dayBookingRepo "github.com/m04kA/SMC-StudySlots/internal/infra/storage/daybooking"
)

// UseCase use case для получения занятости слотов на дату
type UseCase struct {
	repo    DayBookingRepository
	catalog domain.SlotCatalog
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(repo DayBookingRepository, logger Logger) *UseCase {
	return &UseCase{
		repo:    repo,
		catalog: domain.DefaultCatalog(),
		logger:  logger,
	}
}

// Execute выполняет use case получения занятости слотов
// Дата без бронирований возвращается как полностью свободная
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		uc.logger.Warn("GetDayAvailability: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := domain.TruncateDate(req.Date)
	uc.logger.Info("GetDayAvailability: date=%s", domain.DateKey(date))

	day, err := uc.repo.GetByDate(ctx, date)
	if err != nil {
		if !errors.Is(err, dayBookingRepo.ErrDayNotFound) {
			uc.logger.Error("GetDayAvailability: failed to get day booking date=%s: %v", domain.DateKey(date), err)
			return nil, fmt.Errorf("%w: failed to get day booking: %v", ErrInternal, err)
		}
		day = domain.EmptyDay(date)
	}

	slots := domain.DeriveAvailability(uc.catalog, day.Details)
	available, _ := domain.Partition(slots)
	uc.logger.Info("GetDayAvailability: date=%s, %d/%d slots available", domain.DateKey(date), len(available), len(slots))

	return &Response{
		Date:         date,
		DayBookingID: day.ID,
		Slots:        slots,
	}, nil
}
