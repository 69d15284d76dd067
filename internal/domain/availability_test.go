package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdays() *Availability {
	return &Availability{
		DoctorID:   1,
		DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		StartTime:  "09:00",
		EndTime:    "17:00",
	}
}

func TestResolveWindow_WorkingDay(t *testing.T) {
	// 2025-10-13: понедельник
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	window, err := weekdays().ResolveWindow(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2025, 10, 13, 17, 0, 0, 0, time.UTC), window.End)
}

func TestResolveWindow_EveryDateOfYear(t *testing.T) {
	a := weekdays()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Проходим через високосный февраль и границы месяцев и года
	for date := start; date.Year() < 2026; date = date.AddDate(0, 0, 1) {
		window, err := a.ResolveWindow(date)
		if !a.WorksOn(date.Weekday()) {
			require.ErrorIs(t, err, ErrNotWorkingDay, date.Format(DateFormat))
			continue
		}
		require.NoError(t, err, date.Format(DateFormat))
		assert.Equal(t, date.Add(9*time.Hour), window.Start)
		assert.Equal(t, date.Add(17*time.Hour), window.End)
	}
}

func TestResolveWindow_NotWorkingDay(t *testing.T) {
	// 2025-10-12: воскресенье
	_, err := weekdays().ResolveWindow(time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrNotWorkingDay)
}

func TestResolveWindow_InvalidConfiguration(t *testing.T) {
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	inverted := weekdays()
	inverted.StartTime, inverted.EndTime = "17:00", "09:00"
	_, err := inverted.ResolveWindow(date)
	require.ErrorIs(t, err, ErrInvalidAvailability)

	empty := weekdays()
	empty.EndTime = "09:00"
	_, err = empty.ResolveWindow(date)
	require.ErrorIs(t, err, ErrInvalidAvailability)

	broken := weekdays()
	broken.StartTime = "9am"
	_, err = broken.ResolveWindow(date)
	require.ErrorIs(t, err, ErrInvalidAvailability)
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays([]string{"monday", "Friday", " SUNDAY "})
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday, time.Sunday}, days)

	_, err = ParseWeekdays([]string{"Monday", "monday"})
	require.ErrorIs(t, err, ErrDuplicateWeekday)

	_, err = ParseWeekdays([]string{"Funday"})
	require.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestWeekdayNames_MondayFirst(t *testing.T) {
	names := WeekdayNames([]time.Weekday{time.Sunday, time.Wednesday, time.Monday})
	assert.Equal(t, []string{"Monday", "Wednesday", "Sunday"}, names)
}

func TestAvailability_Validate(t *testing.T) {
	require.NoError(t, weekdays().Validate())

	noDays := weekdays()
	noDays.DaysOfWeek = nil
	require.ErrorIs(t, noDays.Validate(), ErrInvalidAvailability)

	dup := weekdays()
	dup.DaysOfWeek = []time.Weekday{time.Monday, time.Monday}
	require.ErrorIs(t, dup.Validate(), ErrDuplicateWeekday)

	inverted := weekdays()
	inverted.StartTime = "18:00"
	require.ErrorIs(t, inverted.Validate(), ErrInvalidAvailability)
}
