package requests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("request not found")

	// ErrNotOwner возвращается, когда заявка адресована другому врачу
	ErrNotOwner = errors.New("request belongs to another doctor")

	// ErrAlreadyResolved возвращается, когда заявка уже принята или отклонена
	ErrAlreadyResolved = errors.New("request is already resolved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
