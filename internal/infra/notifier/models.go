package notifier

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Message уведомление, отправляемое клиенту по WebSocket
type Message struct {
	Type       string    `json:"type"`
	RequestID  int64     `json:"requestId"`
	DoctorID   int64     `json:"doctorId"`
	PatientID  int64     `json:"patientId"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Time       string    `json:"time"` // HH:MM
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewMessage конвертирует доменное событие в сообщение
func NewMessage(event domain.Event) Message {
	return Message{
		Type:       string(event.Type),
		RequestID:  event.RequestID,
		DoctorID:   event.DoctorID,
		PatientID:  event.PatientID,
		Date:       event.Date.Format(domain.DateFormat),
		Time:       event.Time.String(),
		Status:     string(event.Status),
		OccurredAt: event.OccurredAt,
	}
}
