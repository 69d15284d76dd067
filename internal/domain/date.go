package domain

import "time"

// Даты и время приёма хранятся как «настенные» значения без часового пояса
// и внутри сервиса представлены в UTC. Текущий момент приводится к тому же виду,
// чтобы сравнения «сегодня» и «уже прошло» не зависели от пояса сервера.

// WallClock переносит показания часов t в UTC без пересчёта
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// DateOf возвращает полночь календарного дня t
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}
