package entity

import "time"

// EventKind тип записи в журнале
type EventKind string

const (
	EventWater            EventKind = "water"
	EventCaloriesConsumed EventKind = "calories_consumed"
	EventCaloriesBurned   EventKind = "calories_burned"
)

// Event запись журнала: дата, тип и величина (мл или ккал)
type Event struct {
	Date   time.Time
	Kind   EventKind
	Amount float64
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
