package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FMP-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

// joinedColumns колонки бронирования вместе с денормализованными данными
// пользователя и активности (для композиции ответов)
var joinedColumns = []string{
	"b.id",
	"b.user_id",
	"b.activity_id",
	"b.tickets_number",
	"b.status",
	"b.booked_at",
	"u.username",
	"u.email",
	"u.role",
	"a.title",
	"a.description",
	"a.date_time",
	"a.duration_minutes",
	"a.price",
	"a.max_capacity",
	"a.current_capacity",
	"a.is_active",
	"a.category",
	"a.location",
	"a.image_url",
	"a.user_id",
	"a.created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается внутри сериализуемой транзакции вместе с изменением capacity активности:
// обе записи фиксируются или откатываются вместе.
// Нарушение уникальности (user_id, activity_id) транслируется в ErrDuplicateBooking
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"activity_id",
			"tickets_number",
			"status",
		).
		Values(
			booking.UserID,
			booking.ActivityID,
			booking.TicketsNumber,
			booking.Status,
		).
		Suffix("RETURNING id, booked_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var bookedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &bookedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.BookedAt = bookedAt.Time
	return booking, nil
}

// GetByID получает бронирование по ID с денормализованными данными
// пользователя и активности
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(joinedColumns...).
		From("bookings b").
		Join("users u ON u.id = b.user_id").
		Join("activities a ON a.id = b.activity_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanJoinedBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserAndActivity получает бронирование пользователя на конкретную активность
// Используется для проверки дубликатов внутри транзакции создания
func (r *Repository) GetByUserAndActivity(ctx context.Context, userID, activityID int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"activity_id",
		"tickets_number",
		"status",
		"booked_at",
	).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "activity_id": activityID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndActivity - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var bookedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ActivityID,
		&booking.TicketsNumber,
		&booking.Status,
		&bookedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndActivity - scan booking: %v", ErrScanRow, err)
	}

	booking.BookedAt = bookedAt.Time
	return &booking, nil
}

// List получает бронирования с фильтрацией по пользователю, активности и статусу,
// с денормализованными данными, новые первыми (booked_at DESC)
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(joinedColumns...).
		From("bookings b").
		Join("users u ON u.id = b.user_id").
		Join("activities a ON a.id = b.activity_id")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.user_id": *filter.UserID})
	}
	if filter.ActivityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.activity_id": *filter.ActivityID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	query, args, err := selectBuilder.
		OrderBy("b.booked_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanJoinedBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateTickets обновляет количество билетов и пересчитанный статус бронирования
func (r *Repository) UpdateTickets(ctx context.Context, id int64, tickets int, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("tickets_number", tickets).
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTickets - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateTickets")
}

// UpdateStatus обновляет закешированный статус бронирования
// Статус - вычисляемая проекция; хранимое значение лишь кеш, обновляемый при чтении
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Delete удаляет бронирование (отмена удаляет строку, отдельного статуса "cancelled" нет)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

// execExpectingRow выполняет запрос и транслирует нулевое число затронутых строк
// в ErrBookingNotFound
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanJoinedBooking сканирует бронирование с присоединенными user и activity
func scanJoinedBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var user domain.User
	var activity domain.Activity
	var bookedAt, activityCreatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ActivityID,
		&booking.TicketsNumber,
		&booking.Status,
		&bookedAt,
		&user.Username,
		&user.Email,
		&user.Role,
		&activity.Title,
		&activity.Description,
		&activity.DateTime,
		&activity.DurationMinutes,
		&activity.Price,
		&activity.MaxCapacity,
		&activity.CurrentCapacity,
		&activity.IsActive,
		&activity.Category,
		&activity.Location,
		&activity.ImageURL,
		&activity.UserID,
		&activityCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookedAt = bookedAt.Time

	user.ID = booking.UserID
	booking.User = &user

	activity.ID = booking.ActivityID
	activity.CreatedAt = activityCreatedAt.Time
	booking.Activity = &activity

	return &booking, nil
}

// isUniqueViolation проверяет нарушение уникального ограничения PostgreSQL
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
