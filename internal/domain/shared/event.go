package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is raised by an aggregate when something happened that other
// parts of the system may care about. Events are collected on the aggregate
// and drained by whoever persists it.
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// BaseDomainEvent carries the fields every event shares. Concrete events
// embed it and add their own payload.
type BaseDomainEvent struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Aggregate   string    `json:"aggregate_type"`
	AggregateID uuid.UUID `json:"aggregate_id"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e *BaseDomainEvent) EventType() string     { return e.Type }
func (e *BaseDomainEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseDomainEvent stamps a new event with identity and time
func NewBaseDomainEvent(eventType, aggType string, aggID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:          uuid.New(),
		Type:        eventType,
		Aggregate:   aggType,
		AggregateID: aggID,
		Timestamp:   time.Now(),
	}
}
