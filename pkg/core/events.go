package core

import "fmt"

// EventType represents the kind of change in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
	EventReload EventType = "RELOAD"
	EventSelect EventType = "SELECT"
)

// Event is delivered to observers after a mutation has been applied.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // milliseconds since epoch
}

// String implements fmt.Stringer.
func (e Event) String() string {
	if e.ID == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

type observer struct {
	id int
	fn func(Event)
}
