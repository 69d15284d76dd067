package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Availability еженедельное расписание приёма врача
// Хранится в профиле врача и перезаписывается целиком, история не ведётся
type Availability struct {
	DoctorID   int64
	DaysOfWeek []time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	UpdatedAt  time.Time
}

// Window конкретный интервал приёма на дату [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWeekday разбирает название дня недели ("Monday"..."Sunday"), регистр не важен
func ParseWeekday(name string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == normalized {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
}

// ParseWeekdays разбирает список названий дней, дубликаты запрещены
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]struct{}, len(names))
	days := make([]time.Weekday, 0, len(names))

	for _, name := range names {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[day]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWeekday, day)
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	return days, nil
}

// WeekdayNames возвращает канонические названия дней, начиная с понедельника
func WeekdayNames(days []time.Weekday) []string {
	sorted := make([]time.Weekday, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool {
		return mondayFirst(sorted[i]) < mondayFirst(sorted[j])
	})

	names := make([]string, len(sorted))
	for i, d := range sorted {
		names[i] = d.String()
	}
	return names
}

func mondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// WorksOn возвращает true, если врач принимает в указанный день недели
func (a *Availability) WorksOn(day time.Weekday) bool {
	for _, d := range a.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// Validate проверяет расписание перед сохранением
func (a *Availability) Validate() error {
	if len(a.DaysOfWeek) == 0 {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidAvailability)
	}

	seen := make(map[time.Weekday]struct{}, len(a.DaysOfWeek))
	for _, d := range a.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: %d", ErrUnknownWeekday, d)
		}
		if _, ok := seen[d]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateWeekday, d)
		}
		seen[d] = struct{}{}
	}

	if err := a.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidAvailability, err)
	}
	if err := a.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidAvailability, err)
	}
	if !a.StartTime.IsBefore(a.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidAvailability)
	}

	return nil
}

// ResolveWindow определяет окно приёма на дату
// Чистая функция: день недели вычисляется по календарю с учётом границ месяцев и лет,
// время начала и конца накладывается на дату в её часовом поясе
func (a *Availability) ResolveWindow(date time.Time) (Window, error) {
	if !a.WorksOn(date.Weekday()) {
		return Window{}, fmt.Errorf("%w: %s", ErrNotWorkingDay, date.Weekday())
	}

	start, err := a.StartTime.On(date)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start time: %v", ErrInvalidAvailability, err)
	}
	end, err := a.EndTime.On(date)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end time: %v", ErrInvalidAvailability, err)
	}
	if !start.Before(end) {
		return Window{}, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidAvailability, a.StartTime, a.EndTime)
	}

	return Window{Start: start, End: end}, nil
}
