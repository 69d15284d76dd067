package create_request

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createRequest "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_request"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateRequestRequest HTTP request model
type CreateRequestRequest struct {
	DoctorID int64  `json:"doctorId"`
	Date     string `json:"date"` // "2025-10-15"
	Time     string `json:"time"` // "10:30"
	Reason   string `json:"reason"`
}

// CreateRequestResponse HTTP response model
type CreateRequestResponse struct {
	RequestID int64 `json:"requestId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateRequestRequest) ToUseCaseRequest(patientID int64) (*createRequest.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}

	return &createRequest.Request{
		PatientID: patientID,
		DoctorID:  r.DoctorID,
		Date:      date,
		Time:      startTime,
		Reason:    r.Reason,
	}, nil
}
