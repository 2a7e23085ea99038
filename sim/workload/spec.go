package workload

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/proc-sim/sim"
)

// Description is a parsed process population in input order.
type Description struct {
	Source    string        `yaml:"-"`
	Processes []ProcessSpec `yaml:"processes"`
}

// ProcessSpec describes one process. Pointer fields distinguish "missing" from zero
// so structured input can reject absent required fields.
type ProcessSpec struct {
	ID      *int     `yaml:"id"`
	Arrival *int64   `yaml:"arrival"`
	CPU     *int64   `yaml:"cpu"`
	IO      []IOSpec `yaml:"io,omitempty"`

	line int // 1-based source line (text) or record index (YAML)
}

// IOSpec describes one I/O request of a process.
type IOSpec struct {
	At       *int64 `yaml:"at"`       // processor time at which the request fires
	Duration *int64 `yaml:"duration"` // service ticks
}

// ParseYAML decodes a YAML description. Uses strict parsing: unrecognized keys are rejected.
func ParseYAML(data []byte, source string) (*Description, error) {
	var desc Description
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&desc); err != nil {
		return nil, &sim.MalformedInputError{Source: source, Reason: fmt.Sprintf("parsing YAML: %v", err)}
	}
	desc.Source = source
	for i := range desc.Processes {
		desc.Processes[i].line = i + 1
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Validate checks every record. The first violation is returned as a *sim.MalformedInputError.
func (d *Description) Validate() error {
	if len(d.Processes) == 0 {
		return d.malformed(0, "at least one process must be defined")
	}
	seen := make(map[int]int, len(d.Processes))
	for i := range d.Processes {
		p := &d.Processes[i]
		if err := d.validateProcess(p); err != nil {
			return err
		}
		if prev, dup := seen[*p.ID]; dup {
			return d.malformed(p.line, fmt.Sprintf("duplicate process id %d (first defined at %d)", *p.ID, prev))
		}
		seen[*p.ID] = p.line
	}
	return nil
}

func (d *Description) validateProcess(p *ProcessSpec) error {
	switch {
	case p.ID == nil:
		return d.malformed(p.line, "missing id")
	case p.Arrival == nil:
		return d.malformed(p.line, "missing arrival time")
	case p.CPU == nil:
		return d.malformed(p.line, "missing required processor time")
	}
	if *p.ID < 0 {
		return d.malformed(p.line, fmt.Sprintf("id must be non-negative, got %d", *p.ID))
	}
	if *p.Arrival < 0 {
		return d.malformed(p.line, fmt.Sprintf("process %d: arrival time must be non-negative, got %d", *p.ID, *p.Arrival))
	}
	if *p.CPU <= 0 {
		return d.malformed(p.line, fmt.Sprintf("process %d: required processor time must be positive, got %d", *p.ID, *p.CPU))
	}
	last := int64(0)
	for j, ev := range p.IO {
		prefix := fmt.Sprintf("process %d: io[%d]", *p.ID, j)
		if ev.At == nil || ev.Duration == nil {
			return d.malformed(p.line, prefix+": both at and duration are required")
		}
		if *ev.At <= last {
			return d.malformed(p.line, fmt.Sprintf("%s: threshold %d must be greater than %d", prefix, *ev.At, last))
		}
		if *ev.At >= *p.CPU {
			return d.malformed(p.line, fmt.Sprintf("%s: threshold %d must be below required processor time %d", prefix, *ev.At, *p.CPU))
		}
		if *ev.Duration <= 0 {
			return d.malformed(p.line, fmt.Sprintf("%s: duration must be positive, got %d", prefix, *ev.Duration))
		}
		last = *ev.At
	}
	return nil
}

func (d *Description) malformed(line int, reason string) *sim.MalformedInputError {
	return &sim.MalformedInputError{Source: d.Source, Line: line, Reason: reason}
}

// ToProcesses converts a validated description into fresh simulation processes, in input order.
func (d *Description) ToProcesses() []*sim.Process {
	procs := make([]*sim.Process, 0, len(d.Processes))
	for _, p := range d.Processes {
		events := make([]sim.IOEvent, len(p.IO))
		for j, ev := range p.IO {
			events[j] = sim.IOEvent{Time: *ev.At, Duration: *ev.Duration}
		}
		procs = append(procs, sim.NewProcess(*p.ID, *p.Arrival, *p.CPU, events))
	}
	return procs
}
