package accept_request

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	return nil
}

// checkCanAccept проверяет, что врач может принять заявку
func checkCanAccept(request *domain.AppointmentRequest, doctorID int64) error {
	if !request.BelongsToDoctor(doctorID) {
		return ErrNotOwner
	}

	if !request.IsPending() {
		return fmt.Errorf("%w: status is %s", ErrAlreadyResolved, request.Status)
	}

	return nil
}
