package domain

import "errors"

var (
	// ErrNotWorkingDay день недели даты не входит в расписание врача
	ErrNotWorkingDay = errors.New("not a working day")

	// ErrInvalidAvailability расписание врача некорректно (время не разбирается или start >= end)
	ErrInvalidAvailability = errors.New("invalid availability configuration")

	// ErrUnknownWeekday неизвестное название дня недели
	ErrUnknownWeekday = errors.New("unknown weekday")

	// ErrDuplicateWeekday день недели указан несколько раз
	ErrDuplicateWeekday = errors.New("duplicate weekday")

	// ErrOutsideWindow слот не помещается в рабочее окно врача
	ErrOutsideWindow = errors.New("slot is outside the availability window")

	// ErrOffGrid время начала не совпадает с сеткой слотов
	ErrOffGrid = errors.New("slot start is not aligned to the slot grid")
)
