package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	"github.com/m04kA/FMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FMP-BookingService/pkg/psqlbuilder"
)

// activityColumns колонки таблицы activities (с префиксом для join-запросов)
var activityColumns = []string{
	"a.id",
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

// Repository репозиторий для работы с активностями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория активностей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую активность
// max_capacity фиксируется при создании, current_capacity начинается с нуля
func (r *Repository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("activities").
		Columns(
			"title",
			"description",
			"date_time",
			"duration_minutes",
			"price",
			"max_capacity",
			"current_capacity",
			"is_active",
			"category",
			"location",
			"image_url",
			"user_id",
		).
		Values(
			activity.Title,
			activity.Description,
			activity.DateTime.UTC(),
			activity.DurationMinutes,
			activity.Price,
			activity.MaxCapacity,
			0,
			activity.IsActive,
			activity.Category,
			activity.Location,
			activity.ImageURL,
			activity.UserID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&activity.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	activity.CurrentCapacity = 0
	activity.CreatedAt = createdAt.Time

	return activity, nil
}

// GetByID получает активность по ID вместе с данными опубликовавшего её администратора
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append([]string{}, activityColumns...)
	columns = append(columns, "u.username", "u.email", "u.role")

	query, args, err := psqlbuilder.Select(columns...).
		From("activities a").
		Join("users u ON u.id = a.user_id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	activity, err := scanActivityWithUser(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan activity: %v", ErrScanRow, err)
	}

	return activity, nil
}

// GetByIDForUpdate получает активность по ID с блокировкой строки (FOR UPDATE)
// Используется ledger-ом: конкурентные изменения current_capacity одной активности
// сериализуются на уровне строки. Вызывается только внутри транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(activityColumns...).
		From("activities a").
		Where(squirrel.Eq{"a.id": id})

	// FOR UPDATE имеет смысл только внутри транзакции
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	activity, err := scanActivity(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - scan activity: %v", ErrScanRow, err)
	}

	return activity, nil
}

// List получает список активных активностей с фильтрацией
func (r *Repository) List(ctx context.Context, filter domain.ActivitiesFilter) ([]*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append([]string{}, activityColumns...)
	columns = append(columns, "u.username", "u.email", "u.role")

	selectBuilder := psqlbuilder.Select(columns...).
		From("activities a").
		Join("users u ON u.id = a.user_id").
		Where(squirrel.Eq{"a.is_active": true})

	if filter.UpcomingOnly {
		selectBuilder = selectBuilder.Where(squirrel.Expr("a.date_time >= NOW()"))
	}

	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"a.title": pattern},
			squirrel.ILike{"a.description": pattern},
		})
	}

	query, args, err := selectBuilder.
		OrderBy("a.date_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		activity, err := scanActivityWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return activities, nil
}

// Update обновляет редактируемые поля активности (каталожные данные)
// current_capacity этим методом не меняется - только через UpdateCapacity
func (r *Repository) Update(ctx context.Context, activity *domain.Activity) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("activities").
		Set("title", activity.Title).
		Set("description", activity.Description).
		Set("date_time", activity.DateTime.UTC()).
		Set("duration_minutes", activity.DurationMinutes).
		Set("price", activity.Price).
		Set("max_capacity", activity.MaxCapacity).
		Set("is_active", activity.IsActive).
		Set("category", activity.Category).
		Set("location", activity.Location).
		Set("image_url", activity.ImageURL).
		Where(squirrel.Eq{"id": activity.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrActivityNotFound
	}

	return nil
}

// UpdateCapacity устанавливает новое значение current_capacity
// Вызывается только ledger-ом внутри транзакции, после GetByIDForUpdate
func (r *Repository) UpdateCapacity(ctx context.Context, id int64, capacity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("activities").
		Set("current_capacity", capacity).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCapacity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCapacity - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrActivityNotFound
	}

	return nil
}

// Delete удаляет активность
// Зависимые бронирования удаляются каскадно на уровне схемы (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("activities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrActivityNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanActivity сканирует строку активностей без join-а
func scanActivity(row rowScanner) (*domain.Activity, error) {
	var activity domain.Activity
	var createdAt sql.NullTime

	err := row.Scan(
		&activity.ID,
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
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	activity.CreatedAt = createdAt.Time
	return &activity, nil
}

// scanActivityWithUser сканирует строку активностей с данными администратора
func scanActivityWithUser(row rowScanner) (*domain.Activity, error) {
	var activity domain.Activity
	var user domain.User
	var createdAt sql.NullTime

	err := row.Scan(
		&activity.ID,
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
		&createdAt,
		&user.Username,
		&user.Email,
		&user.Role,
	)
	if err != nil {
		return nil, err
	}

	activity.CreatedAt = createdAt.Time
	user.ID = activity.UserID
	activity.User = &user

	return &activity, nil
}
