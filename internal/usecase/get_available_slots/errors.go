package get_available_slots

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("get_available_slots: doctor not found")

	// ErrDateInPast возвращается, когда запрошенная дата уже прошла
	ErrDateInPast = errors.New("get_available_slots: date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
