package events

import "time"

// Kind identifies an event type within an owner-facing namespace.
type Kind string

// Event is the contract every coordination event satisfies.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the kind and arrival instant shared by all events.
type Base struct {
	kind      Kind
	timestamp time.Time
}

// NewBase stamps a base with the given kind and the current instant.
func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}
