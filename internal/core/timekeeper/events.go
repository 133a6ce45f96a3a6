package timekeeper

import "time"

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventError       EventType = "error"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type    EventType
	Session Session
	Message string
	At      time.Time
}
