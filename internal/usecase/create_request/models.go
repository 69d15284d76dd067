package create_request

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание заявки
type Request struct {
	PatientID int64            // ID пациента (из токена)
	DoctorID  int64            // ID врача
	Date      time.Time        // Дата приёма (без времени)
	Time      types.TimeString // Время начала слота (например, "10:30")
	Reason    string           // Причина обращения
}

// Response модель ответа с созданной заявкой
type Response struct {
	RequestID int64            // ID созданной заявки
	DoctorID  int64            // ID врача
	Date      time.Time        // Дата приёма
	Time      types.TimeString // Время начала слота
	Status    string           // Статус (всегда pending)
	CreatedAt time.Time        // Время создания
}
