package get_patient_appointments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

type RequestService interface {
	GetPatientRequests(ctx context.Context, req *models.GetPatientRequestsRequest) (*models.RequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
