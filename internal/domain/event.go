package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// EventType тип real-time уведомления
type EventType string

const (
	EventRequestCreated  EventType = "appointment.requested"
	EventRequestAccepted EventType = "appointment.accepted"
	EventRequestRejected EventType = "appointment.rejected"
)

// Event уведомление об изменении заявки
// Доставка best-effort: отправляется после фиксации изменения, без подтверждений и повторов
type Event struct {
	Type       EventType
	RequestID  int64
	DoctorID   int64
	PatientID  int64
	Date       time.Time
	Time       types.TimeString
	Status     RequestStatus
	OccurredAt time.Time
}

// NewRequestEvent создает событие по заявке
func NewRequestEvent(eventType EventType, r *AppointmentRequest, now time.Time) Event {
	return Event{
		Type:       eventType,
		RequestID:  r.ID,
		DoctorID:   r.DoctorID,
		PatientID:  r.PatientID,
		Date:       r.Date,
		Time:       r.Time,
		Status:     r.Status,
		OccurredAt: now,
	}
}
