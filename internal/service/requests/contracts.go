package requests

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentRequest, error)
	List(ctx context.Context, filter domain.RequestsFilter) ([]*domain.AppointmentRequest, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.RequestStatus) error
}

// Notifier отправляет real-time уведомления (best-effort, ошибок не возвращает)
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, event domain.Event)
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
