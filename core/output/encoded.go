package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"cleaning-cost/core/types"
)

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) Render(w io.Writer, result *EstimationResult) error {
	return encodeJSON(w, result)
}

func (jsonFormatter) RenderRates(w io.Writer, rates *RateSheet) error {
	return encodeJSON(w, rates)
}

func (jsonFormatter) RenderRooms(w io.Writer, rooms []types.Room) error {
	return encodeJSON(w, rooms)
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type yamlFormatter struct{}

func (yamlFormatter) Format() Format { return FormatYAML }

func (yamlFormatter) Render(w io.Writer, result *EstimationResult) error {
	return encodeYAML(w, result)
}

func (yamlFormatter) RenderRates(w io.Writer, rates *RateSheet) error {
	return encodeYAML(w, rates)
}

func (yamlFormatter) RenderRooms(w io.Writer, rooms []types.Room) error {
	return encodeYAML(w, rooms)
}

func encodeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
