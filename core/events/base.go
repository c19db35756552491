package events

import (
	"reflect"
	"time"
)

type Kind string

type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

// NewBaseAt creates a base stamped with a caller-provided time.
func NewBaseAt(kind Kind, timestamp time.Time) Base {
	return Base{kind: kind, timestamp: timestamp}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}

// Restamp returns a copy of event carrying timestamp at. Events that do not
// embed Base are returned unchanged.
func Restamp(event Event, at time.Time) Event {
	if event == nil {
		return nil
	}

	value := reflect.ValueOf(event)
	if value.Kind() != reflect.Struct {
		return event
	}
	copied := reflect.New(value.Type()).Elem()
	copied.Set(value)

	base := copied.FieldByName("Base")
	if !base.IsValid() || base.Type() != reflect.TypeOf(Base{}) {
		return event
	}
	base.Set(reflect.ValueOf(NewBaseAt(event.Kind(), at)))
	return copied.Interface().(Event)
}
