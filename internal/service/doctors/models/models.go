package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UpdateAvailabilityRequest запрос на перезапись расписания врача
type UpdateAvailabilityRequest struct {
	DoctorID   int64    `json:"doctorId"`
	ActorID    int64    `json:"-"`          // Кто меняет (из токена)
	DaysOfWeek []string `json:"daysOfWeek"` // Monday...Sunday
	StartTime  string   `json:"startTime"`  // HH:MM
	EndTime    string   `json:"endTime"`    // HH:MM
}

// ToDomain конвертирует request в domain модель с проверкой формата
func (r *UpdateAvailabilityRequest) ToDomain() (*domain.Availability, error) {
	days, err := domain.ParseWeekdays(r.DaysOfWeek)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &domain.Availability{
		DoctorID:   r.DoctorID,
		DaysOfWeek: days,
		StartTime:  start,
		EndTime:    end,
	}, nil
}

// AvailabilityResponse расписание врача
type AvailabilityResponse struct {
	DoctorID   int64     `json:"doctorId"`
	DaysOfWeek []string  `json:"daysOfWeek"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FromDomainAvailability конвертирует domain модель в response
func FromDomainAvailability(a *domain.Availability) *AvailabilityResponse {
	return &AvailabilityResponse{
		DoctorID:   a.DoctorID,
		DaysOfWeek: domain.WeekdayNames(a.DaysOfWeek),
		StartTime:  a.StartTime.String(),
		EndTime:    a.EndTime.String(),
		UpdatedAt:  a.UpdatedAt,
	}
}
