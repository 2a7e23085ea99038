package workload

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/inference-sim/proc-sim/sim"
)

// DefaultLocation is the process list used when none is given.
const DefaultLocation = "./procList.txt"

// Format selects the description syntax.
type Format string

const (
	FormatAuto Format = "auto" // by extension: .yaml/.yml -> YAML, anything else -> text
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// validFormats maps accepted format strings.
var validFormats = map[Format]bool{
	FormatAuto: true,
	FormatText: true,
	FormatYAML: true,
	"":         true, // empty defaults to auto
}

// IsValidFormat returns true if the given format string is recognized.
func IsValidFormat(name string) bool {
	return validFormats[Format(name)]
}

// Detect resolves FormatAuto (or empty) from the location's extension.
func Detect(location string, format Format) Format {
	if format != FormatAuto && format != "" {
		return format
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, source string, format Format) (*Description, error) {
	switch Detect(source, format) {
	case FormatYAML:
		return ParseYAML(data, source)
	case FormatText:
		return ParseText(data, source)
	default:
		return nil, fmt.Errorf("unknown description format %q", format)
	}
}

// Loader reads and writes process descriptions through an afs.Service, so any afs-supported URL
// (local path, file://, mem://, ...) can be used.
type Loader struct {
	fs afs.Service
}

// NewLoader creates a Loader. A nil fs uses afs.New().
func NewLoader(fs afs.Service) *Loader {
	if fs == nil {
		fs = afs.New()
	}
	return &Loader{fs: fs}
}

// Load downloads and parses the description at location.
// Read failures are wrapped; content problems are *sim.MalformedInputError.
func (l *Loader) Load(ctx context.Context, location string, format Format) (*Description, error) {
	URL := url.Normalize(location, file.Scheme)
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("reading process description %s: %w", location, err)
	}
	return Parse(data, location, format)
}

// LoadProcesses is Load followed by ToProcesses.
func (l *Loader) LoadProcesses(ctx context.Context, location string, format Format) ([]*sim.Process, error) {
	desc, err := l.Load(ctx, location, format)
	if err != nil {
		return nil, err
	}
	return desc.ToProcesses(), nil
}

// Save encodes desc and uploads it to location, replacing any existing content.
func (l *Loader) Save(ctx context.Context, location string, format Format, desc *Description) error {
	data, err := Encode(desc, location, format)
	if err != nil {
		return err
	}
	URL := url.Normalize(location, file.Scheme)
	if err := l.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing process description %s: %w", location, err)
	}
	return nil
}
