package daybooking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudySlots/internal/domain"
	"github.com/m04kA/SMC-StudySlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudySlots/pkg/psqlbuilder"
)

const (
	tableDays    = "day_bookings"
	tableDetails = "booking_details"

	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
)

var dayColumns = []string{"id", "booking_date", "created_at", "updated_at"}

var detailColumns = []string{
	"id",
	"day_booking_id",
	"lesson",
	"tv",
	"group_name",
	"user_id",
	"user_first_name",
	"user_second_name",
	"user_is_teacher",
	"created_at",
	"updated_at",
}

// Repository репозиторий дней бронирования и их деталей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает день со всеми деталями по дате
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.DayBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(dayColumns...).
		From(tableDays).
		Where(squirrel.Eq{"booking_date": domain.DateKey(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	day, err := scanDay(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	details, err := r.listDetails(ctx, squirrel.Eq{"day_booking_id": day.ID.String()})
	if err != nil {
		return nil, err
	}
	day.Details = details
	return day, nil
}

// GetByID получает день со всеми деталями по ID.
// Внутри транзакции блокирует строку дня (SELECT ... FOR UPDATE), чтобы сериализовать добавление деталей.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DayBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(dayColumns...).
		From(tableDays).
		Where(squirrel.Eq{"id": id.String()})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	day, err := scanDay(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	details, err := r.listDetails(ctx, squirrel.Eq{"day_booking_id": day.ID.String()})
	if err != nil {
		return nil, err
	}
	day.Details = details
	return day, nil
}

// CreateDay создает пустой день на дату
func (r *Repository) CreateDay(ctx context.Context, date time.Time) (*domain.DayBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := &domain.DayBooking{
		ID:          uuid.New(),
		BookingDate: domain.TruncateDate(date),
		Details:     []domain.BookingDetail{},
	}

	query, args, err := psqlbuilder.Insert(tableDays).
		Columns("id", "booking_date").
		Values(day.ID, domain.DateKey(day.BookingDate)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDay - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.CreatedAt, &day.UpdatedAt)
	// В сериализуемой транзакции гонка за дату приходит как 40001, а не как 23505
	if isPgError(err, pgUniqueViolation) || isPgError(err, pgSerializationFailure) {
		return nil, ErrDayExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDay - execute insert: %v", ErrExecQuery, err)
	}

	return day, nil
}

// AddDetail добавляет деталь в день
// Нарушение уникальности (day_booking_id, lesson, tv) возвращается как ErrSlotTaken
func (r *Repository) AddDetail(ctx context.Context, detail *domain.BookingDetail) (*domain.BookingDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if detail.ID == uuid.Nil {
		detail.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableDetails).
		Columns(
			"id",
			"day_booking_id",
			"lesson",
			"tv",
			"group_name",
			"user_id",
			"user_first_name",
			"user_second_name",
			"user_is_teacher",
		).
		Values(
			detail.ID,
			detail.DayBookingID,
			string(detail.Lesson),
			detail.TV,
			detail.Group,
			detail.Occupant.ID,
			detail.Occupant.FirstName,
			detail.Occupant.SecondName,
			detail.Occupant.IsTeacher,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddDetail - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&detail.CreatedAt, &detail.UpdatedAt)
	switch {
	case isPgError(err, pgUniqueViolation), isPgError(err, pgSerializationFailure):
		return nil, ErrSlotTaken
	case isPgError(err, pgForeignKeyViolation):
		return nil, ErrDayNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: AddDetail - execute insert: %v", ErrExecQuery, err)
	}

	return detail, nil
}

// GetDetail получает деталь дня по ID
func (r *Repository) GetDetail(ctx context.Context, dayBookingID, detailID uuid.UUID) (*domain.BookingDetail, error) {
	details, err := r.listDetails(ctx, squirrel.Eq{"id": detailID.String(), "day_booking_id": dayBookingID.String()})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrDetailNotFound
	}
	return &details[0], nil
}

// DeleteDetail удаляет деталь дня
func (r *Repository) DeleteDetail(ctx context.Context, dayBookingID, detailID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableDetails).
		Where(squirrel.Eq{"id": detailID.String(), "day_booking_id": dayBookingID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDetail - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDetail - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDetail - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrDetailNotFound
	}
	return nil
}

// ListDetailsByUser получает все детали пользователя вместе с датами, новые даты первыми
func (r *Repository) ListDetailsByUser(ctx context.Context, userID int64) ([]domain.MyDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, 0, len(detailColumns)+1)
	for _, c := range detailColumns {
		columns = append(columns, "bd."+c)
	}
	columns = append(columns, "db.booking_date")

	query, args, err := psqlbuilder.Select(columns...).
		From(tableDetails + " bd").
		Join(tableDays + " db ON db.id = bd.day_booking_id").
		Where(squirrel.Eq{"bd.user_id": userID}).
		OrderBy("db.booking_date DESC", "bd.lesson ASC", "bd.tv ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetailsByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetailsByUser - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.MyDetail, 0)
	for rows.Next() {
		var item domain.MyDetail
		dest := append(detailDest(&item.BookingDetail), &item.BookingDate)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: ListDetailsByUser - scan detail: %v", ErrScanRow, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDetailsByUser - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListDays получает страницу дней (новые даты первыми) со всеми деталями и общее число дней
func (r *Repository) ListDays(ctx context.Context, page domain.Page) ([]*domain.DayBooking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(tableDays).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListDays - build count query: %v", ErrBuildQuery, err)
	}
	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListDays - count: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(dayColumns...).
		From(tableDays).
		OrderBy("booking_date DESC").
		Limit(uint64(page.Take)).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListDays - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.DayBooking, 0)
	index := make(map[uuid.UUID]*domain.DayBooking)
	ids := make([]string, 0)
	for rows.Next() {
		day := &domain.DayBooking{Details: []domain.BookingDetail{}}
		if err := rows.Scan(&day.ID, &day.BookingDate, &day.CreatedAt, &day.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("%w: ListDays - scan day: %v", ErrScanRow, err)
		}
		days = append(days, day)
		index[day.ID] = day
		ids = append(ids, day.ID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: ListDays - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return days, total, nil
	}

	details, err := r.listDetails(ctx, squirrel.Eq{"day_booking_id": ids})
	if err != nil {
		return nil, 0, err
	}
	for _, d := range details {
		if day, ok := index[d.DayBookingID]; ok {
			day.Details = append(day.Details, d)
		}
	}

	return days, total, nil
}

// listDetails получает детали по условию в порядке каталога
func (r *Repository) listDetails(ctx context.Context, where squirrel.Eq) ([]domain.BookingDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailColumns...).
		From(tableDetails).
		Where(where).
		OrderBy("lesson ASC", "tv ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listDetails - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	details := make([]domain.BookingDetail, 0)
	for rows.Next() {
		var d domain.BookingDetail
		if err := rows.Scan(detailDest(&d)...); err != nil {
			return nil, fmt.Errorf("%w: listDetails - scan detail: %v", ErrScanRow, err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listDetails - rows error: %v", ErrScanRow, err)
	}

	return details, nil
}

func scanDay(row *sql.Row) (*domain.DayBooking, error) {
	var day domain.DayBooking
	err := row.Scan(&day.ID, &day.BookingDate, &day.CreatedAt, &day.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan day booking: %v", ErrScanRow, err)
	}
	return &day, nil
}

func detailDest(d *domain.BookingDetail) []interface{} {
	return []interface{}{
		&d.ID,
		&d.DayBookingID,
		&d.Lesson,
		&d.TV,
		&d.Group,
		&d.Occupant.ID,
		&d.Occupant.FirstName,
		&d.Occupant.SecondName,
		&d.Occupant.IsTeacher,
		&d.CreatedAt,
		&d.UpdatedAt,
	}
}

func isPgError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
