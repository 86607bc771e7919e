// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"sort"

	"cleaning-cost/core/pricing"
	"cleaning-cost/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatYAML is machine-readable YAML
	FormatYAML Format = "yaml"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *EstimationResult) error

	// RenderRates produces output for a whole rate table
	RenderRates(w io.Writer, rates *RateSheet) error

	// RenderRooms produces output for a room list
	RenderRooms(w io.Writer, rooms []types.Room) error
}

// EstimationResult contains the complete estimation output
type EstimationResult struct {
	// Profile is the priced property
	Profile types.PropertyProfile `json:"profile" yaml:"profile"`

	// Rooms is the room list the floor surcharge was computed over
	Rooms []types.Room `json:"rooms" yaml:"rooms"`

	// Quote is the estimate and its breakdown
	Quote *pricing.Quote `json:"quote" yaml:"quote"`

	// Metadata contains execution context
	Metadata EstimationMetadata `json:"metadata" yaml:"metadata"`

	// ShowBreakdown asks human formats to list adjustment lines
	ShowBreakdown bool `json:"-" yaml:"-"`
}

// EstimationMetadata contains execution context
type EstimationMetadata struct {
	// Timestamp is when the estimation was performed
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Duration is how long the estimation took
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Version is the tool version
	Version string `json:"version" yaml:"version"`

	// Source is where the profile came from (flags, file path, api)
	Source string `json:"source" yaml:"source"`

	// InputHash identifies the priced profile and room list
	InputHash string `json:"input_hash,omitempty" yaml:"input_hash,omitempty"`
}

// RateSheet is a full rate table for display
type RateSheet struct {
	Table    string          `json:"table" yaml:"table"`
	Currency types.Currency  `json:"currency" yaml:"currency"`
	Rows     []types.RateRow `json:"rows" yaml:"rows"`
}

var registry = map[Format]Formatter{}

// Register adds a formatter, replacing any with the same format.
func Register(f Formatter) {
	registry[f.Format()] = f
}

// Get returns the formatter for a format type
func Get(format Format) (Formatter, bool) {
	f, ok := registry[format]
	return f, ok
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

func init() {
	Register(&tableFormatter{format: FormatCLI})
	Register(&tableFormatter{format: FormatMarkdown})
	Register(&jsonFormatter{})
	Register(&yamlFormatter{})
}
