package accept_request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("accept_request: request not found")

	// ErrNotOwner возвращается, когда заявка адресована другому врачу
	ErrNotOwner = errors.New("accept_request: request belongs to another doctor")

	// ErrAlreadyResolved возвращается, когда заявка уже принята или отклонена
	ErrAlreadyResolved = errors.New("accept_request: request is already resolved")

	// ErrSlotTaken возвращается, когда на слот уже есть подтверждённая запись
	ErrSlotTaken = errors.New("accept_request: slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_request: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_request: internal error")
)
