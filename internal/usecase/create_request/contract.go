package create_request

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

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, request *domain.AppointmentRequest) (*domain.AppointmentRequest, error)
	HasPending(ctx context.Context, patientID, doctorID int64, slot domain.Slot) (bool, error)
}

// AppointmentRepository интерфейс репозитория подтверждённых записей
type AppointmentRepository interface {
	ExistsAt(ctx context.Context, doctorID int64, date time.Time, startTime types.TimeString) (bool, error)
}

// Notifier отправляет real-time уведомления (best-effort, ошибок не возвращает)
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, event domain.Event)
}

// MetricsRecorder записывает бизнес-метрики
type MetricsRecorder interface {
	ObserveBookingRequest(outcome string)
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
