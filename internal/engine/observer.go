package engine

import "time"

// EventType represents different lifecycle phases of an operation
type EventType string

const (
	EventOpStart EventType = "op_start"
	EventOpEnd   EventType = "op_end"
)

// Event represents a lifecycle event of one operation call
type Event struct {
	Type      EventType     // Type of event
	TxID      string        // Transaction ID for tracing
	Table     string        // Table the operation is bound to
	Operation string        // list, create, update or delete
	Timestamp time.Time     // When the event occurred
	Duration  time.Duration // Set on EventOpEnd
	Err       error         // Set on EventOpEnd when the operation failed
	Data      interface{}   // Phase-specific data (e.g., rows returned, new id)
}

// Observer interface for event subscribers
// Observers receive events from concurrent requests and must be safe for concurrent use
type Observer interface {
	OnEvent(event Event)
}
