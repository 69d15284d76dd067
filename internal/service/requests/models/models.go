package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")

	// ErrInvalidPeriod возвращается при некорректном значении фильтра time
	ErrInvalidPeriod = errors.New("invalid time filter")
)

// Request модели

// GetPatientRequestsRequest запрос на получение истории заявок пациента
type GetPatientRequestsRequest struct {
	PatientID int64   `json:"patientId"`
	Time      *string `json:"time,omitempty"`     // upcoming | past (опционально)
	Status    *string `json:"status,omitempty"`   // pending | accepted | rejected (опционально)
	DoctorID  *int64  `json:"doctorId,omitempty"` // Фильтр по врачу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPatientRequestsRequest) ToDomainFilter(now time.Time) (domain.RequestsFilter, error) {
	filter := domain.RequestsFilter{
		PatientID: &r.PatientID,
		DoctorID:  r.DoctorID,
		Now:       now,
	}

	if r.Status != nil {
		status, ok := domain.ParseRequestStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if r.Time != nil {
		period := domain.Period(*r.Time)
		if period != domain.PeriodUpcoming && period != domain.PeriodPast {
			return filter, ErrInvalidPeriod
		}
		filter.Period = &period
	}

	return filter, nil
}

// GetDoctorRequestsRequest запрос на получение входящих заявок врача
type GetDoctorRequestsRequest struct {
	DoctorID int64      `json:"doctorId"`
	Status   *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
	Date     *time.Time `json:"date,omitempty"`   // Фильтр по дате приёма (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDoctorRequestsRequest) ToDomainFilter() (domain.RequestsFilter, error) {
	filter := domain.RequestsFilter{
		DoctorID: &r.DoctorID,
		Date:     r.Date,
	}

	if r.Status != nil {
		status, ok := domain.ParseRequestStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// RequestResponse заявка на приём
type RequestResponse struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patientId"`
	DoctorID  int64     `json:"doctorId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequestListResponse список заявок
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// FromDomainRequest конвертирует domain модель в response
func FromDomainRequest(r *domain.AppointmentRequest) *RequestResponse {
	return &RequestResponse{
		ID:        r.ID,
		PatientID: r.PatientID,
		DoctorID:  r.DoctorID,
		Date:      r.Date.Format(domain.DateFormat),
		Time:      r.Time.String(),
		Reason:    r.Reason,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainRequestList конвертирует список domain моделей в response
func FromDomainRequestList(requests []*domain.AppointmentRequest) *RequestListResponse {
	result := &RequestListResponse{
		Requests: make([]RequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		result.Requests = append(result.Requests, *FromDomainRequest(r))
	}
	return result
}
