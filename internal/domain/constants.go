package domain

import "time"

// SlotDuration длительность одного слота приёма (политика, не настраивается)
const SlotDuration = 30 * time.Minute

// Business validation constants
const (
	MaxReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Period фильтр заявок относительно текущего момента
type Period string

const (
	PeriodUpcoming Period = "upcoming"
	PeriodPast     Period = "past"
)
