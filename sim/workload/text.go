package workload

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/inference-sim/proc-sim/sim"
)

// ParseText decodes the line-oriented process list format:
//
//	# id arrival cpu [ioAt:ioDuration ...]
//	1 0 5 2:3
//	2 1 4
//
// Blank lines and '#' comments are ignored.
func ParseText(data []byte, source string) (*Description, error) {
	desc := &Description{Source: source}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		spec, err := parseTextRecord(fields, lineNo)
		if err != nil {
			return nil, &sim.MalformedInputError{Source: source, Line: lineNo, Reason: err.Error()}
		}
		desc.Processes = append(desc.Processes, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &sim.MalformedInputError{Source: source, Line: lineNo, Reason: err.Error()}
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

func parseTextRecord(fields []string, lineNo int) (ProcessSpec, error) {
	if len(fields) < 3 {
		return ProcessSpec{}, fmt.Errorf("expected id, arrival time and processor time, got %d field(s)", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return ProcessSpec{}, fmt.Errorf("invalid id %q", fields[0])
	}
	arrival, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return ProcessSpec{}, fmt.Errorf("invalid arrival time %q", fields[1])
	}
	cpu, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return ProcessSpec{}, fmt.Errorf("invalid processor time %q", fields[2])
	}
	spec := ProcessSpec{ID: &id, Arrival: &arrival, CPU: &cpu, line: lineNo}
	for _, tok := range fields[3:] {
		atStr, durStr, ok := strings.Cut(tok, ":")
		if !ok {
			return ProcessSpec{}, fmt.Errorf("invalid I/O event %q, want at:duration", tok)
		}
		at, err := strconv.ParseInt(atStr, 10, 64)
		if err != nil {
			return ProcessSpec{}, fmt.Errorf("invalid I/O threshold %q", atStr)
		}
		dur, err := strconv.ParseInt(durStr, 10, 64)
		if err != nil {
			return ProcessSpec{}, fmt.Errorf("invalid I/O duration %q", durStr)
		}
		spec.IO = append(spec.IO, IOSpec{At: &at, Duration: &dur})
	}
	return spec, nil
}
