// Package trace provides per-tick recording of scheduler activity.
// This package has no dependencies on sim/ -- it stores pure data types.
package trace

// EventRecord captures one state-changing action within a tick.
type EventRecord struct {
	Action    string `yaml:"action"`
	ProcessID int    `yaml:"pid"`
}

// TickRecord captures the outcome of a single scheduler tick.
type TickRecord struct {
	Tick          int64         `yaml:"tick"`
	Action        string        `yaml:"action"`           // reported label
	Events        []EventRecord `yaml:"events,omitempty"` // nil unless Level is TraceLevelEvents
	Active        int           `yaml:"active"`           // active processes at end of tick
	ProcessorBusy bool          `yaml:"busy"`
}

// CompletionRecord captures the accounting of a process when it reaches Done.
type CompletionRecord struct {
	ProcessID    int   `yaml:"pid"`
	ArrivalTime  int64 `yaml:"arrival"`
	AdmitTime    int64 `yaml:"admitted"`
	FirstRunTime int64 `yaml:"first_run"`
	DoneTime     int64 `yaml:"done"`
	Turnaround   int64 `yaml:"turnaround"`
	WaitTicks    int64 `yaml:"wait"`
	BlockedTicks int64 `yaml:"blocked"`
	IORequests   int   `yaml:"io_requests"`
}
