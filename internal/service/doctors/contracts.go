package doctors

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей и расписаний
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAvailability(ctx context.Context, doctorID int64) (*domain.Availability, error)
	UpsertAvailability(ctx context.Context, availability *domain.Availability) (*domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
