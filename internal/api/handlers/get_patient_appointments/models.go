package get_patient_appointments

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
// Пустые параметры означают отсутствие фильтра
func ToServiceRequest(patientID int64, query url.Values) (*models.GetPatientRequestsRequest, error) {
	req := &models.GetPatientRequestsRequest{PatientID: patientID}

	if period := query.Get("time"); period != "" {
		req.Time = &period
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if doctorIDStr := query.Get("doctorId"); doctorIDStr != "" {
		doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("doctorId: %w", err)
		}
		req.DoctorID = &doctorID
	}

	return req, nil
}
