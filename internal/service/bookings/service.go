package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	dayBookingRepo "github.com/m04kA/SMC-StudySlots/internal/infra/storage/daybooking"
	"github.com/m04kA/SMC-StudySlots/internal/integrations/events"
	"github.com/m04kA/SMC-StudySlots/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	repo      DayBookingRepository
	publisher EventPublisher
	metrics   ReleaseMetrics
	logger    Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo DayBookingRepository, publisher EventPublisher, releaseMetrics ReleaseMetrics, logger Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   releaseMetrics,
		logger:    logger,
	}
}

// GetDay получает день бронирования по дате
// Если на дату бронирований нет, возвращает ErrDayNotFound
func (s *Service) GetDay(ctx context.Context, date time.Time) (*models.DayBookingResponse, error) {
	s.logger.Info("GetDay: fetching day booking date=%s", domain.DateKey(date))

	day, err := s.repo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, dayBookingRepo.ErrDayNotFound) {
			return nil, ErrDayNotFound
		}
		s.logger.Error("GetDay: failed to get day booking date=%s: %v", domain.DateKey(date), err)
		return nil, fmt.Errorf("%w: GetDay - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDayBooking(day), nil
}

// GetUserDetails получает все детали пользователя (история "мои бронирования")
func (s *Service) GetUserDetails(ctx context.Context, userID int64) (*models.MyDetailListResponse, error) {
	s.logger.Info("GetUserDetails: fetching details for user=%d", userID)

	items, err := s.repo.ListDetailsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserDetails: failed to list details for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserDetails - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserDetails: found %d details for user=%d", len(items), userID)
	return models.FromDomainMyDetails(items), nil
}

// CancelDetail отменяет деталь бронирования
// Пользователь может отменить только свою деталь, администратор любую
func (s *Service) CancelDetail(ctx context.Context, req *models.CancelDetailRequest) error {
	s.logger.Info("CancelDetail: user=%d admin=%t cancelling detail=%s of day=%s",
		req.UserID, req.IsAdmin, req.DetailID, req.DayBookingID)

	day, err := s.repo.GetByID(ctx, req.DayBookingID)
	if err != nil {
		if errors.Is(err, dayBookingRepo.ErrDayNotFound) {
			return ErrDayNotFound
		}
		s.logger.Error("CancelDetail: failed to get day=%s: %v", req.DayBookingID, err)
		return fmt.Errorf("%w: CancelDetail - repository error: %v", ErrInternal, err)
	}

	detail, err := s.repo.GetDetail(ctx, req.DayBookingID, req.DetailID)
	if err != nil {
		if errors.Is(err, dayBookingRepo.ErrDetailNotFound) {
			return ErrDetailNotFound
		}
		s.logger.Error("CancelDetail: failed to get detail=%s: %v", req.DetailID, err)
		return fmt.Errorf("%w: CancelDetail - repository error: %v", ErrInternal, err)
	}

	if !req.IsAdmin && detail.Occupant.ID != req.UserID {
		s.logger.Warn("CancelDetail: access denied for user=%d to detail=%s (owner=%d)",
			req.UserID, req.DetailID, detail.Occupant.ID)
		return ErrAccessDenied
	}

	if err := s.repo.DeleteDetail(ctx, req.DayBookingID, req.DetailID); err != nil {
		if errors.Is(err, dayBookingRepo.ErrDetailNotFound) {
			return ErrDetailNotFound
		}
		s.logger.Error("CancelDetail: failed to delete detail=%s: %v", req.DetailID, err)
		return fmt.Errorf("%w: CancelDetail - repository error: %v", ErrInternal, err)
	}

	s.metrics.RecordRelease()
	s.logger.Info("CancelDetail: released %s tv=%t on %s", detail.Lesson, detail.TV, domain.DateKey(day.BookingDate))

	event := events.NewSlotEvent(events.TypeSlotReleased, day.BookingDate, detail, time.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("CancelDetail: failed to publish event for detail=%s: %v", detail.ID, err)
	}

	return nil
}

// ListDays получает страницу дней бронирования (админка)
func (s *Service) ListDays(ctx context.Context, req *models.ListDaysRequest) (*models.DayBookingPageResponse, error) {
	page := domain.Page{Page: req.Page, Take: req.Take}
	if page.Page == 0 {
		page.Page = domain.DefaultPage
	}
	if page.Take == 0 {
		page.Take = domain.DefaultTake
	}
	if page.Page < 1 || page.Take < 1 || page.Take > domain.MaxPageSize {
		return nil, fmt.Errorf("%w: page must be >= 1 and take in [1, %d]", ErrInvalidInput, domain.MaxPageSize)
	}

	s.logger.Info("ListDays: fetching page=%d take=%d", page.Page, page.Take)

	days, total, err := s.repo.ListDays(ctx, page)
	if err != nil {
		s.logger.Error("ListDays: failed to list days: %v", err)
		return nil, fmt.Errorf("%w: ListDays - repository error: %v", ErrInternal, err)
	}

	resp := &models.DayBookingPageResponse{
		Bookings: make([]models.DayBookingResponse, 0, len(days)),
		Page:     page.Page,
		Take:     page.Take,
		Total:    total,
	}
	for _, day := range days {
		resp.Bookings = append(resp.Bookings, *models.FromDomainDayBooking(day))
	}
	return resp, nil
}
