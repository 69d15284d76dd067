package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий пользователей и расписаний врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"role",
		"full_name",
		"email",
		"specialization",
		"created_at",
		"updated_at",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Role,
		&user.FullName,
		&user.Email,
		&user.Specialization,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}

// GetAvailability получает расписание врача
func (r *Repository) GetAvailability(ctx context.Context, doctorID int64) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"doctor_id",
		"days_of_week",
		"start_time",
		"end_time",
		"updated_at",
	).
		From("doctor_availability").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - build select query: %v", ErrBuildQuery, err)
	}

	var (
		availability domain.Availability
		dayNames     []string
		updatedAt    sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&availability.DoctorID,
		pq.Array(&dayNames),
		&availability.StartTime,
		&availability.EndTime,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - scan availability: %v", ErrScanRow, err)
	}

	days, err := domain.ParseWeekdays(dayNames)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - stored weekdays: %v", ErrScanRow, err)
	}

	availability.DaysOfWeek = days
	availability.UpdatedAt = updatedAt.Time

	return &availability, nil
}

// UpsertAvailability перезаписывает расписание врача (история не хранится)
func (r *Repository) UpsertAvailability(ctx context.Context, availability *domain.Availability) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("doctor_availability").
		Columns(
			"doctor_id",
			"days_of_week",
			"start_time",
			"end_time",
		).
		Values(
			availability.DoctorID,
			pq.Array(domain.WeekdayNames(availability.DaysOfWeek)),
			availability.StartTime,
			availability.EndTime,
		).
		Suffix("ON CONFLICT (doctor_id) DO UPDATE SET " +
			"days_of_week = EXCLUDED.days_of_week, " +
			"start_time = EXCLUDED.start_time, " +
			"end_time = EXCLUDED.end_time, " +
			"updated_at = NOW() " +
			"RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertAvailability - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertAvailability - execute upsert: %v", ErrExecQuery, err)
	}

	availability.UpdatedAt = updatedAt.Time

	return availability, nil
}
