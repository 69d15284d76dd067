package update_doctor_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/doctors/models"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	DaysOfWeek []string `json:"daysOfWeek"` // ["Monday", "Wednesday"]
	StartTime  string   `json:"startTime"`  // "09:00"
	EndTime    string   `json:"endTime"`    // "17:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(doctorID, actorID int64) *models.UpdateAvailabilityRequest {
	return &models.UpdateAvailabilityRequest{
		DoctorID:   doctorID,
		ActorID:    actorID,
		DaysOfWeek: r.DaysOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
	}
}
