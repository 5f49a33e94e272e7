package crossroad

import (
	"time"

	"github.com/google/uuid"
)

// Names of the notifications that are not phase changes
const (
	EventReady  = "ready"
	EventArrive = "arrive"
	EventCross  = "cross"
	EventStart  = "start"
	EventStop   = "stop"
)

// Event describes something that happened during a simulation run
type Event interface {
	GetID() string
	GetName() string
	GetData() any
	GetTimestamp() time.Time
	GetMetadata() map[string]any
}

// BaseEvent provides a basic implementation of the Event interface
type BaseEvent struct {
	id        string
	name      string
	data      any
	timestamp time.Time
	metadata  map[string]any
}

// NewEvent creates a new basic event
func NewEvent(name string, data any) Event {
	return &BaseEvent{
		id:        uuid.New().String(),
		name:      name,
		data:      data,
		timestamp: time.Now(),
		metadata:  make(map[string]any),
	}
}

// NewEventWithMetadata creates a new event with metadata
func NewEventWithMetadata(name string, data any, metadata map[string]any) Event {
	return &BaseEvent{
		id:        uuid.New().String(),
		name:      name,
		data:      data,
		timestamp: time.Now(),
		metadata:  metadata,
	}
}

// GetID returns the unique event ID
func (e *BaseEvent) GetID() string {
	return e.id
}

// GetName returns the event name
func (e *BaseEvent) GetName() string {
	return e.name
}

// GetData returns the event data
func (e *BaseEvent) GetData() any {
	return e.data
}

// GetTimestamp returns the event timestamp
func (e *BaseEvent) GetTimestamp() time.Time {
	return e.timestamp
}

// GetMetadata returns a copy of the event metadata
func (e *BaseEvent) GetMetadata() map[string]any {
	result := make(map[string]any, len(e.metadata))
	for k, v := range e.metadata {
		result[k] = v
	}
	return result
}
