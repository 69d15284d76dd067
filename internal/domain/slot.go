package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot интервал приёма [Start, End)
type Slot struct {
	Start time.Time
	End   time.Time
}

// StartTime возвращает время начала слота в формате HH:MM
func (s Slot) StartTime() types.TimeString {
	return types.NewTimeString(s.Start)
}

// EndTime возвращает время окончания слота в формате HH:MM
func (s Slot) EndTime() types.TimeString {
	return types.NewTimeString(s.End)
}

// GenerateSlots разбивает окно на последовательные непересекающиеся слоты длительностью duration
// Последний слот заканчивается не позже window.End; окно короче одного слота даёт пустой список
func GenerateSlots(window Window, duration time.Duration) []Slot {
	slots := make([]Slot, 0)
	if duration <= 0 {
		return slots
	}

	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(duration) {
		slots = append(slots, Slot{Start: start, End: start.Add(duration)})
	}

	return slots
}

// FilterBooked убирает слоты, время начала которых совпадает с уже занятым
// Сравнивается только начало: все записи лежат на одной 30-минутной сетке
func FilterBooked(slots []Slot, booked []types.TimeString) []Slot {
	taken := make(map[types.TimeString]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	free := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if _, ok := taken[slot.StartTime()]; ok {
			continue
		}
		free = append(free, slot)
	}

	return free
}

// FilterStartingBefore убирает слоты, начинающиеся раньше момента t
func FilterStartingBefore(slots []Slot, t time.Time) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.Start.Before(t) {
			continue
		}
		result = append(result, slot)
	}
	return result
}

// SlotAt строит слот, начинающийся в startTime на дату окна
// Слот должен целиком лежать в окне и быть выровнен по сетке duration от начала окна
func (w Window) SlotAt(startTime types.TimeString, duration time.Duration) (Slot, error) {
	start, err := startTime.On(w.Start)
	if err != nil {
		return Slot{}, err
	}

	slot := Slot{Start: start, End: start.Add(duration)}

	if slot.Start.Before(w.Start) || slot.End.After(w.End) {
		return Slot{}, fmt.Errorf("%w: %s-%s not within %s-%s", ErrOutsideWindow,
			slot.StartTime(), slot.EndTime(), types.NewTimeString(w.Start), types.NewTimeString(w.End))
	}

	if slot.Start.Sub(w.Start)%duration != 0 {
		return Slot{}, fmt.Errorf("%w: %s", ErrOffGrid, slot.StartTime())
	}

	return slot, nil
}
