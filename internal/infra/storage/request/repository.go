package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var requestColumns = []string{
	"id",
	"patient_id",
	"doctor_id",
	"appointment_date",
	"appointment_time",
	"reason",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
func (r *Repository) Create(ctx context.Context, request *domain.AppointmentRequest) (*domain.AppointmentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_requests").
		Columns(
			"patient_id",
			"doctor_id",
			"appointment_date",
			"appointment_time",
			"reason",
			"status",
		).
		Values(
			request.PatientID,
			request.DoctorID,
			request.Date,
			request.Time,
			request.Reason,
			request.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&request.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return request, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы два врача
// не могли одновременно сменить статус одной заявки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("appointment_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	request, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// HasPending проверяет, есть ли у пациента ожидающая заявка на тот же слот врача
func (r *Repository) HasPending(ctx context.Context, patientID, doctorID int64, slot domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("appointment_requests").
		Where(squirrel.Eq{
			"patient_id":       patientID,
			"doctor_id":        doctorID,
			"appointment_date": domain.DateOf(slot.Start),
			"appointment_time": slot.StartTime(),
			"status":           domain.RequestPending,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasPending - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasPending - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// List получает заявки по фильтру
// Сортировка: сначала более поздние дата и время
//
// Примеры использования:
//
//  1. Все заявки пациента:
//     filter := domain.RequestsFilter{PatientID: &patientID}
//
//  2. Ожидающие заявки врача на дату:
//     filter := domain.RequestsFilter{DoctorID: &doctorID, Status: &pending, Date: &date}
//
//  3. Предстоящие заявки пациента:
//     filter := domain.RequestsFilter{PatientID: &patientID, Period: &upcoming, Now: now}
func (r *Repository) List(ctx context.Context, filter domain.RequestsFilter) ([]*domain.AppointmentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("appointment_requests")

	if filter.PatientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"patient_id": *filter.PatientID})
	}
	if filter.DoctorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"doctor_id": *filter.DoctorID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": domain.DateOf(*filter.Date)})
	}
	if filter.Period != nil {
		cond, err := periodCondition(*filter.Period, filter.Now)
		if err != nil {
			return nil, fmt.Errorf("%w: List - %v", ErrBuildQuery, err)
		}
		selectBuilder = selectBuilder.Where(cond)
	}

	query, args, err := selectBuilder.
		OrderBy("appointment_date DESC", "appointment_time DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// UpdateStatus переводит заявку из статуса from в статус to
// Обновление условное: если статус уже изменился, возвращается ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointment_requests").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Ничего не обновили: либо заявки нет, либо её статус уже другой
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusChanged
}

// periodCondition строит условие upcoming/past относительно момента now
// Заявка на сегодня считается предстоящей, пока не наступило её время
func periodCondition(period domain.Period, now time.Time) (squirrel.Sqlizer, error) {
	today := domain.DateOf(now)
	clock := types.NewTimeString(now)

	switch period {
	case domain.PeriodUpcoming:
		return squirrel.Or{
			squirrel.Gt{"appointment_date": today},
			squirrel.And{
				squirrel.Eq{"appointment_date": today},
				squirrel.GtOrEq{"appointment_time": clock},
			},
		}, nil
	case domain.PeriodPast:
		return squirrel.Or{
			squirrel.Lt{"appointment_date": today},
			squirrel.And{
				squirrel.Eq{"appointment_date": today},
				squirrel.Lt{"appointment_time": clock},
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.AppointmentRequest, error) {
	var request domain.AppointmentRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&request.ID,
		&request.PatientID,
		&request.DoctorID,
		&request.Date,
		&request.Time,
		&request.Reason,
		&request.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	request.Date = domain.DateOf(request.Date)
	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return &request, nil
}

// scanRequests сканирует результаты запроса в слайс заявок
func scanRequests(rows *sql.Rows) ([]*domain.AppointmentRequest, error) {
	requests := make([]*domain.AppointmentRequest, 0)

	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
