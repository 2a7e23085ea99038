package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// TraceLevel controls the verbosity of tick tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTicks captures the reported label of every tick.
	TraceLevelTicks TraceLevel = "ticks"
	// TraceLevelEvents additionally captures every action performed within each tick.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelTicks:  true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level  TraceLevel
	Source string // process description the run was loaded from
}

// SimulationTrace collects tick and completion records during a simulation.
type SimulationTrace struct {
	RunID       string             `yaml:"run_id"`
	Source      string             `yaml:"source,omitempty"`
	Level       TraceLevel         `yaml:"level"`
	Ticks       []TickRecord       `yaml:"ticks"`
	Completions []CompletionRecord `yaml:"completions"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording, tagged with a fresh run ID.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	level := config.Level
	if level == "" {
		level = TraceLevelNone
	}
	return &SimulationTrace{
		RunID:       uuid.New().String(),
		Source:      config.Source,
		Level:       level,
		Ticks:       make([]TickRecord, 0),
		Completions: make([]CompletionRecord, 0),
	}
}

// Enabled reports whether records should be collected at all.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Level != TraceLevelNone
}

// RecordTick appends a tick record. Events are dropped below TraceLevelEvents.
func (st *SimulationTrace) RecordTick(record TickRecord) {
	if !st.Enabled() {
		return
	}
	if st.Level != TraceLevelEvents {
		record.Events = nil
	}
	st.Ticks = append(st.Ticks, record)
}

// RecordCompletion appends a completion record.
func (st *SimulationTrace) RecordCompletion(record CompletionRecord) {
	if !st.Enabled() {
		return
	}
	st.Completions = append(st.Completions, record)
}

// Export writes the trace as YAML to w.
func (st *SimulationTrace) Export(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	return enc.Close()
}

// WriteFile exports the trace as YAML to path.
func (st *SimulationTrace) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return st.Export(file)
}

// ReadTraceFile decodes the YAML trace at path.
func ReadTraceFile(path string) (*SimulationTrace, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadTrace(file)
}

// ReadTrace decodes a YAML trace previously written by Export.
func ReadTrace(r io.Reader) (*SimulationTrace, error) {
	var st SimulationTrace
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&st); err != nil {
		return nil, fmt.Errorf("decoding trace: %w", err)
	}
	return &st, nil
}
