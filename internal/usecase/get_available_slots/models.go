package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	DoctorID int64     // ID врача
	Date     time.Time // Дата (без времени)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	DoctorID int64     // ID врача
	Date     time.Time // Дата, на которую запрашивались слоты
	Slots    []Slot    // Свободные слоты в порядке возрастания времени
}

// Slot модель временного слота
type Slot struct {
	Start types.TimeString // Время начала (например, "09:00")
	End   types.TimeString // Время окончания (например, "09:30")
}
