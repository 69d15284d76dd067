package accept_request

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentRequest, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus) error
}

// AppointmentRepository интерфейс репозитория подтверждённых записей
type AppointmentRepository interface {
	ExistsAt(ctx context.Context, doctorID int64, date time.Time, startTime types.TimeString) (bool, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправляет real-time уведомления (best-effort, ошибок не возвращает)
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, event domain.Event)
}

// MetricsRecorder записывает бизнес-метрики
type MetricsRecorder interface {
	ObserveAccept(outcome string)
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
