package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "BOOKING_CONFIRMED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the booking and ingestion flows.
const (
	TypeBookingConfirmed = "BOOKING_CONFIRMED"
	TypeBookingCancelled = "BOOKING_CANCELLED"
	TypeCorpusRebuilt    = "CORPUS_REBUILT"
)

// NewBookingConfirmed builds the event published after a booking
// transaction commits.
func NewBookingConfirmed(appointmentId, service, date, time_, roomId string) Event {
	return BaseEvent{
		Type: TypeBookingConfirmed,
		Data: map[string]interface{}{
			"appointment_id": appointmentId,
			"service":        service,
			"date":           date,
			"time":           time_,
			"room_id":        roomId,
		},
		OccurredAt: time.Now(),
	}
}

func NewBookingCancelled(appointmentId, service, date, time_ string) Event {
	return BaseEvent{
		Type: TypeBookingCancelled,
		Data: map[string]interface{}{
			"appointment_id": appointmentId,
			"service":        service,
			"date":           date,
			"time":           time_,
		},
		OccurredAt: time.Now(),
	}
}

func NewCorpusRebuilt(chunkCount int, sources int) Event {
	return BaseEvent{
		Type: TypeCorpusRebuilt,
		Data: map[string]interface{}{
			"chunk_count": chunkCount,
			"sources":     sources,
		},
		OccurredAt: time.Now(),
	}
}
