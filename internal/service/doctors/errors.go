package doctors

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrAvailabilityNotSet возвращается, когда врач ещё не настроил расписание
	ErrAvailabilityNotSet = errors.New("availability is not configured")

	// ErrAccessDenied возвращается, когда расписание пытается изменить не сам врач
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
