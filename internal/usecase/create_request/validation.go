package create_request

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}

// mapSlotError переводит ошибку построения слота в ошибку usecase
func mapSlotError(err error) error {
	switch {
	case errors.Is(err, domain.ErrOutsideWindow):
		return fmt.Errorf("%w: %v", ErrOutsideWindow, err)
	case errors.Is(err, domain.ErrOffGrid):
		return fmt.Errorf("%w: %v", ErrOffGrid, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
