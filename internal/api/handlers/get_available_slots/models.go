package get_available_slots

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// SlotResponse свободный слот
type SlotResponse struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) []SlotResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Start: slot.Start.String(),
			End:   slot.End.String(),
		}
	}
	return slots
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(doctorID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		DoctorID: doctorID,
		Date:     date,
	}, nil
}
