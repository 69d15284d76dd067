package get_doctor_availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/doctors/models"
)

type DoctorService interface {
	GetAvailability(ctx context.Context, doctorID int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
