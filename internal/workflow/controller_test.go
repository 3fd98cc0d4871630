package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
)

var today = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// fakeBackend in-memory бэкенд с управляемыми задержками ответов
type fakeBackend struct {
	mu        sync.Mutex
	days      map[string]*domain.DayBooking
	getErr    error
	appendErr error
	createErr error

	getGates     map[string]chan struct{}
	getStarted   chan string
	mutationGate chan struct{}
	mutStarted   chan struct{}

	gets    []string
	creates int
	appends int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		days:       make(map[string]*domain.DayBooking),
		getGates:   make(map[string]chan struct{}),
		getStarted: make(chan string, 16),
		mutStarted: make(chan struct{}, 4),
	}
}

func (f *fakeBackend) GetDayBooking(ctx context.Context, date time.Time) (*domain.DayBooking, error) {
	key := domain.DateKey(date)

	f.mu.Lock()
	f.gets = append(f.gets, key)
	gate := f.getGates[key]
	f.mu.Unlock()

	if gate != nil {
		f.getStarted <- key
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	day, ok := f.days[key]
	if !ok {
		return nil, domain.ErrDayNotFound
	}
	return day.Clone(), nil
}

func (f *fakeBackend) CreateDayBooking(ctx context.Context, date time.Time, draft domain.DetailDraft) (*domain.DayBooking, error) {
	f.waitMutation()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	key := domain.DateKey(date)
	if _, ok := f.days[key]; ok {
		return nil, domain.ErrDayAlreadyExists
	}
	f.creates++
	day := &domain.DayBooking{ID: uuid.New(), BookingDate: date}
	day.Details = append(day.Details, newDetail(day.ID, draft))
	f.days[key] = day
	return day.Clone(), nil
}

func (f *fakeBackend) AppendDetail(ctx context.Context, dayBookingID uuid.UUID, draft domain.DetailDraft) (*domain.BookingDetail, error) {
	f.waitMutation()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	for _, day := range f.days {
		if day.ID != dayBookingID {
			continue
		}
		if _, taken := day.FindDetail(draft.Slot()); taken {
			return nil, domain.ErrSlotTaken
		}
		f.appends++
		detail := newDetail(day.ID, draft)
		day.Details = append(day.Details, detail)
		return &detail, nil
	}
	return nil, domain.ErrDayNotFound
}

func (f *fakeBackend) waitMutation() {
	f.mu.Lock()
	gate := f.mutationGate
	f.mu.Unlock()
	if gate != nil {
		f.mutStarted <- struct{}{}
		<-gate
	}
}

// occupy бронирование другим пользователем в обход контроллера
func (f *fakeBackend) occupy(date time.Time, lesson domain.Lesson, tv bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := domain.DateKey(date)
	day, ok := f.days[key]
	if !ok {
		day = &domain.DayBooking{ID: uuid.New(), BookingDate: date}
		f.days[key] = day
	}
	day.Details = append(day.Details, newDetail(day.ID, domain.DetailDraft{Lesson: lesson, TV: tv, Group: "other"}))
}

func (f *fakeBackend) getCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, g := range f.gets {
		if g == key {
			n++
		}
	}
	return n
}

func newDetail(dayID uuid.UUID, draft domain.DetailDraft) domain.BookingDetail {
	return domain.BookingDetail{
		ID:           uuid.New(),
		DayBookingID: dayID,
		Lesson:       draft.Lesson,
		TV:           draft.TV,
		Group:        draft.Group,
	}
}

func newTestController(backend *fakeBackend, opts ...Option) *Controller {
	opts = append([]Option{WithTimeProvider(fixedClock{now: today})}, opts...)
	return NewController(backend, backend, opts...)
}

func day(offset int) time.Time {
	return domain.TruncateDate(today).AddDate(0, 0, offset)
}

func slotState(t *testing.T, view View, lesson domain.Lesson, tv bool) domain.SlotState {
	t.Helper()
	for _, s := range view.Availability {
		if s.Slot == (domain.Slot{Lesson: lesson, TV: tv}) {
			return s.State
		}
	}
	t.Fatalf("slot %s tv=%t not in availability", lesson, tv)
	return ""
}

func TestSelectDate_NotFoundIsEmptyDay(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(backend)

	require.NoError(t, c.SelectDate(context.Background(), day(1)))

	view := c.Snapshot()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.NoError(t, view.Err)
	require.Len(t, view.Availability, 6)
	for _, s := range view.Availability {
		assert.Equal(t, domain.SlotAvailable, s.State)
	}
	assert.False(t, view.Day.Exists())
	assert.Empty(t, c.TakeNotices())
}

func TestSelectDate_PastDateRejected(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(backend)

	err := c.SelectDate(context.Background(), day(-1))

	require.ErrorIs(t, err, ErrPastDate)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, PhaseIdle, c.Snapshot().Phase)
	notices := c.TakeNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.KindValidation, notices[0].Kind)
	assert.Empty(t, backend.gets)

	require.NoError(t, c.SelectDate(context.Background(), today), "today is bookable")
}

func TestSelectDate_FetchErrorThenRetry(t *testing.T) {
	backend := newFakeBackend()
	backend.getErr = domain.ErrUnavailable
	c := newTestController(backend)

	err := c.SelectDate(context.Background(), day(1))
	require.ErrorIs(t, err, domain.ErrUnavailable)

	view := c.Snapshot()
	assert.Equal(t, PhaseFailed, view.Phase)
	assert.ErrorIs(t, view.Err, domain.ErrUnavailable)
	notices := c.TakeNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.KindNetwork, notices[0].Kind)

	require.ErrorIs(t, c.PickSlot(context.Background(), domain.Lesson1, false), ErrInvalidTransition)

	backend.mu.Lock()
	backend.getErr = nil
	backend.mu.Unlock()

	require.NoError(t, c.Retry(context.Background()))
	view = c.Snapshot()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.NoError(t, view.Err)
	assert.Len(t, view.Availability, 6)
}

func TestRetry_WithoutDate(t *testing.T) {
	c := newTestController(newFakeBackend())
	assert.ErrorIs(t, c.Retry(context.Background()), ErrNoDate)
}

func TestSubmit_EmptyGroupBlocked(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(backend)
	ctx := context.Background()

	require.NoError(t, c.SelectDate(ctx, day(1)))
	require.NoError(t, c.PickSlot(ctx, domain.Lesson2, true))
	c.SetGroup("   ")

	err := c.Submit(ctx)

	require.ErrorIs(t, err, ErrGroupRequired)
	assert.ErrorIs(t, err, domain.ErrValidation)
	view := c.Snapshot()
	assert.Equal(t, PhaseAwaitingConfirmation, view.Phase)
	require.NotNil(t, view.Selected)
	assert.Equal(t, domain.Slot{Lesson: domain.Lesson2, TV: true}, *view.Selected)
	notices := c.TakeNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.KindValidation, notices[0].Kind)
	assert.Zero(t, backend.creates)
	assert.Zero(t, backend.appends)
}

func TestSubmit_GroupTooLong(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(backend)
	ctx := context.Background()

	require.NoError(t, c.SelectDate(ctx, day(1)))
	require.NoError(t, c.PickSlot(ctx, domain.Lesson1, false))
	long := make([]rune, domain.MaxGroupLength+1)
	for i := range long {
		long[i] = 'г'
	}
	c.SetGroup(string(long))

	require.ErrorIs(t, c.Submit(ctx), ErrGroupTooLong)
	assert.Equal(t, PhaseAwaitingConfirmation, c.Snapshot().Phase)
}

func TestSubmit_CreatesThenAppends(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(backend)
	ctx := context.Background()
	date := day(2)

	require.NoError(t, c.SelectDate(ctx, date))
	require.NoError(t, c.PickSlot(ctx, domain.Lesson1, false))
	c.SetGroup("ИУ7-61Б")
	require.NoError(t, c.Submit(ctx))

	view := c.Snapshot()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Nil(t, view.Selected)
	assert.Empty(t, view.Group)
	assert.True(t, view.Day.Exists())
	assert.Equal(t, domain.SlotBooked, slotState(t, view, domain.Lesson1, false))
	assert.Equal(t, domain.SlotAvailable, slotState(t, view, domain.Lesson1, true))
	assert.Equal(t, 1, backend.creates)

	require.NoError(t, c.PickSlot(ctx, domain.Lesson1, true))
	c.SetGroup("ИУ7-62Б")
	require.NoError(t, c.Submit(ctx))

	view = c.Snapshot()
	assert.Equal(t, domain.SlotBooked, slotState(t, view, domain.Lesson1, true))
	assert.Equal(t, 1, backend.creates)
	assert.Equal(t, 1, backend.appends)

	notices := c.TakeNotices()
	require.Len(t, notices, 2)
	assert.Equal(t, domain.KindNone, notices[0].Kind)
}

func TestSubmit_SlotTakenRefetches(t *testing.T) {
	backend := newFakeBackend()
	date := day(1)
	backend.occupy(date, domain.Lesson3, true)
	c := newTestController(backend)
	ctx := context.Background()

	require.NoError(t, c.SelectDate(ctx, date))
	require.NoError(t, c.PickSlot(ctx, domain.Lesson1, false))
	c.SetGroup("ИУ7-61Б")

	backend.occupy(date, domain.Lesson1, false)
	err := c.Submit(ctx)

	require.ErrorIs(t, err, domain.ErrSlotTaken)
	view := c.Snapshot()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Nil(t, view.Selected)
	assert.Equal(t, "ИУ7-61Б", view.Group, "draft group is kept for the next pick")
	assert.Equal(t, domain.SlotBooked, slotState(t, view, domain.Lesson1, false))
	assert.Equal(t, 2, backend.getCount(domain.DateKey(date)))

	notices := c.TakeNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.KindConflict, notices[0].Kind)

	assert.ErrorIs(t, c.PickSlot(ctx, domain.Lesson1, false), ErrSlotUnavailable)
}

func TestSubmit_DayCreatedConcurrentlyThenAppends(t *testing.T) {
	backend := newFakeBackend()
	date := day(3)
	c := newTestController(backend)
	ctx := context.Background()

	require.NoError(t, c.SelectDate(ctx, date))
	require.NoError(t, c.PickSlot(ctx, domain.Lesson2, false))
	c.SetGroup("РК6-81")

	backend.occupy(date, domain.Lesson3, false)
	require.ErrorIs(t, c.Submit(ctx), domain.ErrDayAlreadyExists)

	view := c.Snapshot()
	assert.Equal(t, PhaseAwaitingConfirmation, view.Phase)
	assert.True(t, view.Day.Exists())
	require.NotNil(t, view.Selected)

	require.NoError(t, c.Submit(ctx))
	assert.Equal(t, 0, backend.creates)
	assert.Equal(t, 1, backend.appends)
	assert.Equal(t, PhaseReady, c.Snapshot().Phase)
}

func TestSubmit_RefetchDropsTakenSelection(t *testing.T) {
	backend := newFakeBackend()
	date := day(3)
	c := newTestController(backend)
	ctx := context.Background()

	require.NoError(t, c.SelectDate(ctx, date))
	require.NoError(t, c.PickSlot(ctx, domain.Lesson2, false))
	c.SetGroup("РК6-81")

	backend.occupy(date, domain.Lesson2, false)
	require.ErrorIs(t, c.Submit(ctx), domain.ErrDayAlreadyExists)

	view := c.Snapshot()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Nil(t, view.Selected)
	assert.Equal(t, domain.SlotBooked, slotState(t, view, domain.Lesson2, false))

	notices := c.TakeNotices()
	require.Len(t, notices, 2)
	assert.Equal(t, msgDayAlreadyExists, notices[0].Message)
	assert.Equal(t, msgSlotTakenMeantime, notices[1].Message)
}

func TestSubmit_NetworkErrorKeepsDraft(t *testing.T) {
	backend := newFakeBackend()
	date := day(1)
	backend.occupy(date, domain.Lesson3, true)
	c := newTestController(backend)
	ctx := context.Background()

	require.NoError(t, c.SelectDate(ctx, date))
	require.NoError(t, c.PickSlot(ctx, domain.Lesson1, true))
	c.SetGroup("СМ1-11")
	backend.appendErr = domain.ErrUnavailable

	require.ErrorIs(t, c.Submit(ctx), domain.ErrUnavailable)

	view := c.Snapshot()
	assert.Equal(t, PhaseAwaitingConfirmation, view.Phase)
	require.NotNil(t, view.Selected)
	assert.Equal(t, "СМ1-11", view.Group)
	assert.Equal(t, 1, backend.getCount(domain.DateKey(date)), "no automatic retry or refetch")

	notices := c.TakeNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.KindNetwork, notices[0].Kind)
}

func TestSelectDate_StaleFetchDiscarded(t *testing.T) {
	backend := newFakeBackend()
	d1, d2 := day(1), day(2)
	backend.occupy(d1, domain.Lesson1, false)
	gate := make(chan struct{})
	backend.getGates[domain.DateKey(d1)] = gate
	c := newTestController(backend)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.SelectDate(ctx, d1) }()
	require.Equal(t, domain.DateKey(d1), <-backend.getStarted)

	require.NoError(t, c.SelectDate(ctx, d2))
	close(gate)
	require.NoError(t, <-done)

	view := c.Snapshot()
	assert.Equal(t, domain.DateKey(d2), domain.DateKey(view.Date))
	assert.Equal(t, PhaseReady, view.Phase)
	for _, s := range view.Availability {
		assert.Equal(t, domain.SlotAvailable, s.State, "D1 bookings must not leak into D2")
	}
}

func TestSubmit_ResultKeyedByCapturedDate(t *testing.T) {
	backend := newFakeBackend()
	d1, d2 := day(1), day(2)
	c := newTestController(backend)
	ctx := context.Background()

	require.NoError(t, c.SelectDate(ctx, d1))
	require.NoError(t, c.PickSlot(ctx, domain.Lesson1, false))
	c.SetGroup("ИУ7-61Б")

	gate := make(chan struct{})
	backend.mu.Lock()
	backend.mutationGate = gate
	backend.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- c.Submit(ctx) }()
	<-backend.mutStarted

	assert.Equal(t, PhaseSubmitting, c.Snapshot().Phase)
	assert.ErrorIs(t, c.Submit(ctx), ErrBusy)
	assert.ErrorIs(t, c.Cancel(), ErrBusy)

	require.NoError(t, c.SelectDate(ctx, d2))
	assert.ErrorIs(t, c.PickSlot(ctx, domain.Lesson2, false), ErrBusy)

	close(gate)
	require.NoError(t, <-done)

	view := c.Snapshot()
	assert.Equal(t, domain.DateKey(d2), domain.DateKey(view.Date))
	assert.Equal(t, PhaseReady, view.Phase)
	assert.False(t, view.Submitting)
	for _, s := range view.Availability {
		assert.Equal(t, domain.SlotAvailable, s.State)
	}
	assert.Equal(t, 2, backend.getCount(domain.DateKey(d1)), "captured date is refetched")

	assert.Empty(t, view.Group, "D1 group must not carry over to D2")

	notices := c.TakeNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.DateKey(d1), domain.DateKey(notices[0].Date))

	backend.mu.Lock()
	backend.mutationGate = nil
	backend.mu.Unlock()

	require.NoError(t, c.PickSlot(ctx, domain.Lesson2, true))
	assert.Empty(t, c.Snapshot().Group)
	assert.ErrorIs(t, c.Submit(ctx), ErrGroupRequired)
	c.TakeNotices()

	require.NoError(t, c.SelectDate(ctx, d1))
	assert.Equal(t, domain.SlotBooked, slotState(t, c.Snapshot(), domain.Lesson1, false))
}

func TestImmediateClaim(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(backend, WithMode(ModeImmediateClaim))
	ctx := context.Background()
	date := day(1)

	require.NoError(t, c.SelectDate(ctx, date))
	require.NoError(t, c.PickSlot(ctx, domain.Lesson2, true))

	view := c.Snapshot()
	assert.Equal(t, ModeImmediateClaim, view.Mode)
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Equal(t, domain.SlotBooked, slotState(t, view, domain.Lesson2, true))
	assert.Equal(t, 1, backend.creates)
	assert.ErrorIs(t, c.Submit(ctx), ErrInvalidTransition)

	backend.occupy(date, domain.Lesson3, false)
	require.ErrorIs(t, c.PickSlot(ctx, domain.Lesson3, false), domain.ErrSlotTaken)
	view = c.Snapshot()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Equal(t, domain.SlotBooked, slotState(t, view, domain.Lesson3, false))
}

func TestImmediateClaim_FailureReturnsToReady(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = domain.ErrUnavailable
	c := newTestController(backend, WithMode(ModeImmediateClaim))
	ctx := context.Background()

	require.NoError(t, c.SelectDate(ctx, day(1)))
	require.ErrorIs(t, c.PickSlot(ctx, domain.Lesson1, false), domain.ErrUnavailable)

	view := c.Snapshot()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Nil(t, view.Selected)
}

func TestCancel(t *testing.T) {
	backend := newFakeBackend()
	c := newTestController(backend)
	ctx := context.Background()

	require.NoError(t, c.SelectDate(ctx, day(1)))
	assert.ErrorIs(t, c.Cancel(), ErrInvalidTransition)

	require.NoError(t, c.PickSlot(ctx, domain.Lesson3, false))
	assert.ErrorIs(t, c.PickSlot(ctx, domain.Lesson3, true), ErrInvalidTransition)
	c.SetGroup("ФН2-31")
	require.NoError(t, c.Cancel())

	view := c.Snapshot()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Nil(t, view.Selected)
	assert.Empty(t, view.Group)
	assert.Zero(t, backend.creates)
}

func TestPickSlot_Guards(t *testing.T) {
	backend := newFakeBackend()
	date := day(1)
	backend.occupy(date, domain.Lesson1, true)
	c := newTestController(backend)
	ctx := context.Background()

	assert.ErrorIs(t, c.PickSlot(ctx, domain.Lesson1, false), ErrInvalidTransition)

	require.NoError(t, c.SelectDate(ctx, date))
	assert.ErrorIs(t, c.PickSlot(ctx, domain.Lesson1, true), ErrSlotUnavailable)
	assert.ErrorIs(t, c.PickSlot(ctx, domain.Lesson("LESSON7"), false), ErrSlotUnavailable)
	assert.NoError(t, c.PickSlot(ctx, domain.Lesson1, false), "TV and non-TV slots are independent")
}

func TestAuthErrorPropagated(t *testing.T) {
	backend := newFakeBackend()
	backend.getErr = domain.ErrUnauthorized
	var got error
	c := newTestController(backend, WithAuthErrorHandler(func(err error) { got = err }))

	require.ErrorIs(t, c.SelectDate(context.Background(), day(1)), domain.ErrUnauthorized)

	assert.ErrorIs(t, got, domain.ErrUnauthorized)
	assert.Equal(t, PhaseFailed, c.Snapshot().Phase)
	notices := c.TakeNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.KindAuth, notices[0].Kind)
}
