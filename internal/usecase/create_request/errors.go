package create_request

import "errors"

var (
	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("create_request: patient not found")

	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("create_request: doctor not found")

	// ErrNotPatient возвращается, когда заявку пытается создать не пациент
	ErrNotPatient = errors.New("create_request: only patients can request appointments")

	// ErrDateInPast возвращается, когда дата или время приёма уже прошли
	ErrDateInPast = errors.New("create_request: appointment time is in the past")

	// ErrDoctorUnavailable возвращается, когда врач не принимает в эту дату
	ErrDoctorUnavailable = errors.New("create_request: doctor is unavailable on this date")

	// ErrOutsideWindow возвращается, когда слот не помещается в рабочее окно врача
	ErrOutsideWindow = errors.New("create_request: slot is outside the doctor's working hours")

	// ErrOffGrid возвращается, когда время не совпадает с сеткой 30-минутных слотов
	ErrOffGrid = errors.New("create_request: slot start is not aligned to the slot grid")

	// ErrSlotTaken возвращается, когда слот уже занят подтверждённой записью
	ErrSlotTaken = errors.New("create_request: slot is already booked")

	// ErrDuplicateRequest возвращается, когда у пациента уже есть ожидающая заявка на этот слот
	ErrDuplicateRequest = errors.New("create_request: pending request for this slot already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_request: internal error")
)
