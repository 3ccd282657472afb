package plan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pablasso/tempo/internal/ctxlog"
)

// Format identifies how a batch file is decoded.
type Format int

const (
	FormatText Format = iota // lenient extraction
	FormatJSON
	FormatHCL
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatHCL:
		return "hcl"
	default:
		return "text"
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".hcl":
		return FormatHCL
	default:
		return FormatText
	}
}

// LoadOptions tunes batch decoding.
type LoadOptions struct {
	// HoursPerDay is the value of "day" in HCL expressions. Zero means 6.
	HoursPerDay float64
}

func (o LoadOptions) hoursPerDay() float64 {
	if o.HoursPerDay <= 0 {
		return 6
	}
	return o.HoursPerDay
}

// LoadFile reads and decodes the batch at path. A batch without a name is
// named after the file.
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*Batch, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	format := DetectFormat(path)
	logger.Debug("Loading task batch...", "path", path, "format", format)

	b, err := Parse(data, path, format, opts)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	b.SourceFile = path
	if b.Name == "" {
		b.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	logger.Debug("Loaded task batch.", "name", b.Name, "tasks", len(b.Tasks))
	return b, nil
}

// Parse decodes data in the given format. filename is used in diagnostics.
func Parse(data []byte, filename string, format Format, opts LoadOptions) (*Batch, error) {
	switch format {
	case FormatJSON:
		b, err := ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON file %s: %w", filename, err)
		}
		return b, nil
	case FormatHCL:
		return ParseHCL(data, filename, opts)
	default:
		b, err := ExtractBatch(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to extract tasks from %s: %w", filename, err)
		}
		return b, nil
	}
}

// ParseJSON strictly decodes either a batch object or a bare array of tasks.
// Unknown fields are rejected.
func ParseJSON(data []byte) (*Batch, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tasks []Task
		if err := dec.Decode(&tasks); err != nil {
			return nil, err
		}
		return &Batch{Tasks: tasks}, nil
	}

	var b Batch
	if err := dec.Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}
