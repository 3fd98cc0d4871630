package get_day_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	dayBookingRepo "github.com/m04kA/SMC-StudySlots/internal/infra/storage/daybooking"
	"github.com/m04kA/SMC-StudySlots/pkg/logger"
)

type fakeRepo struct {
	day *domain.DayBooking
	err error
}

func (f *fakeRepo) GetByDate(ctx context.Context, date time.Time) (*domain.DayBooking, error) {
	return f.day, f.err
}

var date = time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)

func TestExecute_EmptyDay(t *testing.T) {
	uc := NewUseCase(&fakeRepo{err: dayBookingRepo.ErrDayNotFound}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.Equal(t, uuid.Nil, resp.DayBookingID)
	require.Len(t, resp.Slots, 6)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.SlotAvailable, s.State)
	}
}

func TestExecute_BookedSlot(t *testing.T) {
	day := &domain.DayBooking{
		ID:          uuid.New(),
		BookingDate: date,
		Details:     []domain.BookingDetail{{ID: uuid.New(), Lesson: domain.Lesson1, TV: false}},
	}
	uc := NewUseCase(&fakeRepo{day: day}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: date.Add(5 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, day.ID, resp.DayBookingID)
	assert.Equal(t, date, resp.Date)
	available, booked := domain.Partition(resp.Slots)
	assert.Len(t, available, 5)
	require.Len(t, booked, 1)
	assert.Equal(t, domain.Slot{Lesson: domain.Lesson1, TV: false}, booked[0].Slot)
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(&fakeRepo{err: errors.New("db down")}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Date: date})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
