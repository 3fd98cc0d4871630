package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/pkg/logger"
)

// cacheEntry день из кэша вместе с поколением запроса, который его загрузил
type cacheEntry struct {
	day *domain.DayBooking
	gen uint64
}

// Controller сценарий бронирования слота на выбранную дату.
//
// Обращения к бэкенду выполняются без удержания мьютекса. Каждая загрузка помечается
// поколением: результат, пришедший после выбора другой даты, попадает только в кэш.
// Результат отправки привязан к дате, захваченной в момент Submit.
type Controller struct {
	query       DayBookingQuery
	mutation    DayBookingMutation
	logger      Logger
	mode        Mode
	catalog     domain.SlotCatalog
	clock       TimeProvider
	onAuthError func(error)

	mu         sync.Mutex
	phase      Phase
	date       time.Time
	hasDate    bool
	generation uint64
	days       map[string]cacheEntry
	fetchErr   error
	selected   *domain.Slot
	group      string
	submitting bool
	notices    []Notice
}

// Option настройка контроллера
type Option func(*Controller)

// WithMode задаёт режим бронирования
func WithMode(mode Mode) Option {
	return func(c *Controller) { c.mode = mode }
}

// WithLogger задаёт логгер
func WithLogger(l Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithTimeProvider задаёт источник "сегодня"
func WithTimeProvider(tp TimeProvider) Option {
	return func(c *Controller) { c.clock = tp }
}

// WithCatalog заменяет каталог слотов
func WithCatalog(catalog domain.SlotCatalog) Option {
	return func(c *Controller) { c.catalog = catalog }
}

// WithAuthErrorHandler вызывается, когда бэкенд отверг сессию
func WithAuthErrorHandler(fn func(error)) Option {
	return func(c *Controller) { c.onAuthError = fn }
}

// NewController создает новый контроллер в фазе idle
func NewController(query DayBookingQuery, mutation DayBookingMutation, opts ...Option) *Controller {
	c := &Controller{
		query:    query,
		mutation: mutation,
		logger:   logger.NewNop(),
		mode:     ModeConfirmFirst,
		catalog:  domain.DefaultCatalog(),
		clock:    &RealTimeProvider{},
		phase:    PhaseIdle,
		days:     make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode возвращает режим бронирования
func (c *Controller) Mode() Mode {
	return c.mode
}

// SelectDate выбирает дату и загружает её бронирования.
// Сбрасывает выбранный слот. Допустимо во время отправки.
func (c *Controller) SelectDate(ctx context.Context, date time.Time) error {
	date = domain.TruncateDate(date)

	c.mu.Lock()
	if domain.IsDateInPast(date, c.clock.Now()) {
		c.notify(domain.KindValidation, msgPastDate, date)
		c.mu.Unlock()
		c.logger.Warn("SelectDate: date=%s is in the past", domain.DateKey(date))
		return ErrPastDate
	}
	c.generation++
	gen := c.generation
	c.date = date
	c.hasDate = true
	c.selected = nil
	c.fetchErr = nil
	c.phase = PhaseLoading
	c.mu.Unlock()

	c.logger.Info("SelectDate: date=%s, generation=%d", domain.DateKey(date), gen)
	return c.load(ctx, date, gen)
}

// Retry повторяет загрузку текущей даты после ошибки
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if !c.hasDate {
		c.mu.Unlock()
		return ErrNoDate
	}
	if c.phase != PhaseFailed && c.phase != PhaseReady {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.generation++
	gen := c.generation
	date := c.date
	c.fetchErr = nil
	c.phase = PhaseLoading
	c.mu.Unlock()

	c.logger.Info("Retry: date=%s, generation=%d", domain.DateKey(date), gen)
	return c.load(ctx, date, gen)
}

// PickSlot выбирает свободный слот.
// В режиме подтверждения переходит к форме, в режиме немедленного бронирования сразу отправляет.
func (c *Controller) PickSlot(ctx context.Context, lesson domain.Lesson, tv bool) error {
	slot := domain.Slot{Lesson: lesson, TV: tv}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.phase != PhaseReady {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	if !domain.IsAvailable(c.availabilityLocked(), slot) {
		c.mu.Unlock()
		c.logger.Warn("PickSlot: slot %s tv=%t is not available", lesson, tv)
		return ErrSlotUnavailable
	}
	c.selected = &slot

	if c.mode == ModeConfirmFirst {
		c.phase = PhaseAwaitingConfirmation
		c.mu.Unlock()
		return nil
	}

	draft := domain.DetailDraft{Lesson: lesson, TV: tv}
	job := c.beginSubmitLocked(draft)
	c.mu.Unlock()

	return c.submit(ctx, job)
}

// SetGroup задаёт название группы в форме подтверждения
func (c *Controller) SetGroup(group string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.group = group
}

// Submit отправляет черновик из формы подтверждения.
// Создаёт день, если на дату ещё нет бронирования, иначе добавляет деталь.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.phase != PhaseAwaitingConfirmation || c.selected == nil {
		c.mu.Unlock()
		return ErrInvalidTransition
	}

	draft := domain.DetailDraft{
		Lesson: c.selected.Lesson,
		TV:     c.selected.TV,
		Group:  strings.TrimSpace(c.group),
	}
	if err := validateDraft(draft, c.mode); err != nil {
		c.notify(domain.KindValidation, validationMessage(err), c.date)
		c.mu.Unlock()
		c.logger.Warn("Submit: validation failed: %v", err)
		return err
	}

	job := c.beginSubmitLocked(draft)
	c.mu.Unlock()

	return c.submit(ctx, job)
}

// Cancel закрывает форму подтверждения и отбрасывает черновик
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrBusy
	}
	if c.phase != PhaseAwaitingConfirmation {
		return ErrInvalidTransition
	}
	c.selected = nil
	c.group = ""
	c.phase = PhaseReady
	return nil
}

// Snapshot возвращает копию текущего состояния
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		Mode:       c.mode,
		Phase:      c.phase,
		Date:       c.date,
		HasDate:    c.hasDate,
		Group:      c.group,
		Submitting: c.submitting,
		Err:        c.fetchErr,
	}
	if c.selected != nil {
		slot := *c.selected
		view.Selected = &slot
	}
	if entry, ok := c.viewEntryLocked(); ok {
		view.Day = entry.day.Clone()
		view.Availability = domain.DeriveAvailability(c.catalog, entry.day.Details)
	}
	return view
}

// TakeNotices возвращает накопленные уведомления и очищает очередь
func (c *Controller) TakeNotices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	notices := c.notices
	c.notices = nil
	return notices
}

// submitJob отправка, захваченная в момент Submit
type submitJob struct {
	date  time.Time
	day   *domain.DayBooking
	draft domain.DetailDraft
	gen   uint64
}

func (c *Controller) beginSubmitLocked(draft domain.DetailDraft) submitJob {
	job := submitJob{date: c.date, draft: draft, gen: c.generation}
	if entry, ok := c.days[domain.DateKey(c.date)]; ok {
		job.day = entry.day
	}
	c.submitting = true
	c.phase = PhaseSubmitting
	return job
}

func (c *Controller) submit(ctx context.Context, job submitJob) error {
	key := domain.DateKey(job.date)

	var err error
	if job.day.Exists() {
		c.logger.Info("Submit: append detail to day=%s (%s), lesson=%s, tv=%t", job.day.ID, key, job.draft.Lesson, job.draft.TV)
		_, err = c.mutation.AppendDetail(ctx, job.day.ID, job.draft)
	} else {
		c.logger.Info("Submit: create day booking %s, lesson=%s, tv=%t", key, job.draft.Lesson, job.draft.TV)
		_, err = c.mutation.CreateDayBooking(ctx, job.date, job.draft)
	}

	c.mu.Lock()
	c.submitting = false
	ownsView := c.generation == job.gen

	refetch := true
	switch {
	case err == nil:
		c.notify(domain.KindNone, msgBooked, job.date)
		// Черновик отправлен: группа сбрасывается, если после выбора другой даты не открыта новая форма
		if ownsView || c.selected == nil {
			c.group = ""
		}
		if ownsView {
			c.selected = nil
			c.phase = PhaseLoading
		}
	case errors.Is(err, domain.ErrSlotTaken):
		c.notify(domain.KindConflict, msgSlotTaken, job.date)
		if ownsView {
			c.selected = nil
			c.phase = PhaseLoading
		}
	case errors.Is(err, domain.ErrDayAlreadyExists):
		c.notify(domain.KindConflict, msgDayAlreadyExists, job.date)
		if ownsView {
			c.phase = c.afterFailurePhase()
		}
	default:
		refetch = false
		c.notify(domain.ClassifyError(err), messageFor(err), job.date)
		if ownsView {
			c.phase = c.afterFailurePhase()
		}
	}
	if refetch {
		delete(c.days, key)
	}
	gen := c.generation
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("Submit: date=%s failed: %v", key, err)
		c.reportAuth(err)
	} else {
		c.logger.Info("Submit: date=%s, lesson=%s, tv=%t booked", key, job.draft.Lesson, job.draft.TV)
	}

	if refetch {
		if loadErr := c.load(ctx, job.date, gen); loadErr != nil {
			c.logger.Warn("Submit: refetch date=%s failed: %v", key, loadErr)
		}
	}
	return err
}

// afterFailurePhase фаза после неуспешной отправки: черновик сохраняется
func (c *Controller) afterFailurePhase() Phase {
	if c.mode == ModeImmediateClaim {
		c.selected = nil
		return PhaseReady
	}
	return PhaseAwaitingConfirmation
}

// load загружает день и применяет результат к виду, только если поколение и дата не сменились
func (c *Controller) load(ctx context.Context, date time.Time, gen uint64) error {
	key := domain.DateKey(date)

	day, err := c.query.GetDayBooking(ctx, date)
	if errors.Is(err, domain.ErrDayNotFound) {
		day, err = domain.EmptyDay(date), nil
	}

	c.mu.Lock()
	current := c.hasDate && c.generation == gen && domain.DateKey(c.date) == key
	if err == nil {
		c.storeLocked(key, day, gen)
	}
	if !current {
		c.mu.Unlock()
		c.logger.Info("load: discarding stale result for date=%s, generation=%d", key, gen)
		return nil
	}

	if err != nil {
		c.fetchErr = err
		c.selected = nil
		c.phase = PhaseFailed
		c.notify(domain.ClassifyError(err), messageFor(err), date)
		c.mu.Unlock()
		c.logger.Error("load: failed to get day booking date=%s: %v", key, err)
		c.reportAuth(err)
		return err
	}

	c.fetchErr = nil
	switch c.phase {
	case PhaseAwaitingConfirmation:
		if c.selected != nil && !domain.IsAvailable(c.availabilityLocked(), *c.selected) {
			c.selected = nil
			c.phase = PhaseReady
			c.notify(domain.KindConflict, msgSlotTakenMeantime, date)
		}
	case PhaseSubmitting:
	default:
		c.phase = PhaseReady
	}
	c.mu.Unlock()
	return nil
}

func (c *Controller) storeLocked(key string, day *domain.DayBooking, gen uint64) {
	if existing, ok := c.days[key]; ok && existing.gen > gen {
		return
	}
	c.days[key] = cacheEntry{day: day, gen: gen}
}

func (c *Controller) viewEntryLocked() (cacheEntry, bool) {
	if !c.hasDate {
		return cacheEntry{}, false
	}
	entry, ok := c.days[domain.DateKey(c.date)]
	return entry, ok
}

func (c *Controller) availabilityLocked() []domain.AvailabilitySlot {
	entry, ok := c.viewEntryLocked()
	if !ok {
		return nil
	}
	return domain.DeriveAvailability(c.catalog, entry.day.Details)
}

func (c *Controller) notify(kind domain.ErrorKind, message string, date time.Time) {
	c.notices = append(c.notices, Notice{Kind: kind, Message: message, Date: date})
}

func (c *Controller) reportAuth(err error) {
	if c.onAuthError != nil && domain.ClassifyError(err) == domain.KindAuth {
		c.onAuthError(err)
	}
}

func validateDraft(draft domain.DetailDraft, mode Mode) error {
	if !draft.Lesson.Valid() {
		return domain.ErrValidation
	}
	if mode == ModeConfirmFirst && draft.Group == "" {
		return ErrGroupRequired
	}
	if utf8.RuneCountInString(draft.Group) > domain.MaxGroupLength {
		return ErrGroupTooLong
	}
	return nil
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrGroupRequired):
		return msgGroupRequired
	case errors.Is(err, ErrGroupTooLong):
		return msgGroupTooLong
	default:
		return msgValidation
	}
}

func messageFor(err error) string {
	switch domain.ClassifyError(err) {
	case domain.KindValidation:
		return msgValidation
	case domain.KindConflict:
		return msgSlotTaken
	case domain.KindNetwork:
		return msgNetwork
	case domain.KindAuth:
		return msgAuth
	default:
		return msgUnknown
	}
}
