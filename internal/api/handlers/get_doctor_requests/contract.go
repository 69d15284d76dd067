package get_doctor_requests

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

type RequestService interface {
	GetDoctorRequests(ctx context.Context, req *models.GetDoctorRequestsRequest) (*models.RequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
