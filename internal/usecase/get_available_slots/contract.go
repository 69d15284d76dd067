package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UserRepository интерфейс репозитория пользователей и расписаний
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAvailability(ctx context.Context, doctorID int64) (*domain.Availability, error)
}

// AppointmentRepository интерфейс репозитория подтверждённых записей
type AppointmentRepository interface {
	GetBookedTimes(ctx context.Context, doctorID int64, date time.Time) ([]types.TimeString, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
