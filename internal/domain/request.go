package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RequestStatus статус заявки на приём
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// ParseRequestStatus проверяет строку статуса
func ParseRequestStatus(s string) (RequestStatus, bool) {
	switch status := RequestStatus(s); status {
	case RequestPending, RequestAccepted, RequestRejected:
		return status, true
	default:
		return "", false
	}
}

// AppointmentRequest заявка пациента на приём к врачу
// Создаётся пациентом, статус меняет только врач, заявки не удаляются
type AppointmentRequest struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	Date      time.Time
	Time      types.TimeString
	Reason    string
	Status    RequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if the request still awaits the doctor's decision
func (r *AppointmentRequest) IsPending() bool {
	return r.Status == RequestPending
}

// IsResolved returns true if the request reached a terminal status
func (r *AppointmentRequest) IsResolved() bool {
	return r.Status == RequestAccepted || r.Status == RequestRejected
}

// BelongsToDoctor returns true if the request targets the given doctor
func (r *AppointmentRequest) BelongsToDoctor(doctorID int64) bool {
	return r.DoctorID == doctorID
}

// Appointment подтверждённая запись, создаётся при принятии заявки
// У врача не может быть двух записей на одни и те же дату и время
type Appointment struct {
	ID        int64
	RequestID int64
	DoctorID  int64
	PatientID int64
	Date      time.Time
	Time      types.TimeString
	Reason    string
	CreatedAt time.Time
}

// NewAppointmentFromRequest копирует поля заявки в запись
func NewAppointmentFromRequest(r *AppointmentRequest) *Appointment {
	return &Appointment{
		RequestID: r.ID,
		DoctorID:  r.DoctorID,
		PatientID: r.PatientID,
		Date:      r.Date,
		Time:      r.Time,
		Reason:    r.Reason,
	}
}

// RequestsFilter фильтр для выборки заявок
type RequestsFilter struct {
	PatientID *int64         // Заявки пациента (опционально)
	DoctorID  *int64         // Заявки к врачу (опционально)
	Status    *RequestStatus // Фильтр по статусу (опционально)
	Date      *time.Time     // Конкретная дата (опционально)
	Period    *Period        // upcoming / past относительно Now (опционально)
	Now       time.Time      // Точка отсчёта для Period
}
