package get_doctor_requests

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(doctorID int64, statusStr, dateStr string) (*models.GetDoctorRequestsRequest, error) {
	req := &models.GetDoctorRequestsRequest{DoctorID: doctorID}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.Date = &date
	}

	return req, nil
}
