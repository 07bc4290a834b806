package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSweepStart  EventType = "sweep_start"
	EventSweepEnd    EventType = "sweep_end"
	EventDerivation  EventType = "derivation"
	EventRunComplete EventType = "run_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Catalog   string    `json:"catalog,omitempty"`
}

// SweepEvent represents the start or end of a sweep over the catalog.
type SweepEvent struct {
	EventBase
	Sweep int `json:"sweep"`
	// Derived is the number of new facts this sweep added (end only).
	Derived int `json:"derived"`
	// Facts is the sorted fact set at the time of the event.
	Facts []string `json:"facts"`
}

// DerivationEvent is emitted for each log entry as it is appended.
type DerivationEvent struct {
	EventBase
	Entry LogEntry `json:"entry"`
}

// RunEvent summarizes a finished run.
type RunEvent struct {
	EventBase
	StopReason  StopReason    `json:"stop_reason"`
	Sweeps      int           `json:"sweeps"`
	Derivations int           `json:"derivations"`
	Duration    time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnSweepStart  func(context.Context, *SweepEvent)
	OnSweepEnd    func(context.Context, *SweepEvent)
	OnDerivation  func(context.Context, *DerivationEvent)
	OnRunComplete func(context.Context, *RunEvent)
}
