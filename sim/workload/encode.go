package workload

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteText writes d in the line-oriented process list format.
func WriteText(w io.Writer, d *Description) error {
	var sb strings.Builder
	sb.WriteString("# id arrival cpu [ioAt:ioDuration ...]\n")
	for _, p := range d.Processes {
		fmt.Fprintf(&sb, "%d %d %d", *p.ID, *p.Arrival, *p.CPU)
		for _, ev := range p.IO {
			fmt.Fprintf(&sb, " %d:%d", *ev.At, *ev.Duration)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteYAML writes d as a YAML document accepted by ParseYAML.
func WriteYAML(w io.Writer, d *Description) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("encoding description: %w", err)
	}
	return encoder.Close()
}

// Encode renders d in format. FormatAuto resolves from location.
func Encode(d *Description, location string, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch Detect(location, format) {
	case FormatYAML:
		err = WriteYAML(&buf, d)
	case FormatText:
		err = WriteText(&buf, d)
	default:
		err = fmt.Errorf("unknown description format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
