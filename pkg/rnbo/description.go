package rnbo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// DescriptionFile is the file name RNBO writes next to the exported sources.
const DescriptionFile = "description.json"

// ErrMalformedExport wraps every validation failure of a description.
var ErrMalformedExport = errors.New("rnbo: malformed export")

// Description is the decoded description.json of an RNBO export.
type Description struct {
	NumInputChannels  int                    `json:"numInputChannels"`
	NumOutputChannels int                    `json:"numOutputChannels"`
	NumParameters     int                    `json:"numParameters"`
	Params            []DescriptionParameter `json:"parameters"`
	Meta              DescriptionMeta        `json:"meta"`
}

// DescriptionMeta carries export provenance.
type DescriptionMeta struct {
	Name        string `json:"name,omitempty"`
	Filename    string `json:"filename,omitempty"`
	ObjectName  string `json:"rnboobjname,omitempty"`
	MaxVersion  string `json:"maxversion,omitempty"`
	RNBOVersion string `json:"rnboversion,omitempty"`
}

// DescriptionParameter is one parameter record as RNBO writes it.
type DescriptionParameter struct {
	Type         string  `json:"type,omitempty"`
	Index        int     `json:"index"`
	Name         string  `json:"name"`
	ParamID      string  `json:"paramId"`
	Minimum      float64 `json:"minimum"`
	Maximum      float64 `json:"maximum"`
	Exponent     float64 `json:"exponent"`
	Steps        int     `json:"steps"`
	InitialValue float64 `json:"initialValue"`
	IsEnum       bool    `json:"isEnum"`
	EnumValues   []any   `json:"enumValues"`
	DisplayName  string  `json:"displayName"`
	Unit         string  `json:"unit"`
	Visible      *bool   `json:"visible,omitempty"`
}

// LoadDescription reads and validates a description file.
func LoadDescription(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rnbo: open description: %w", err)
	}
	defer f.Close()

	d, err := DecodeDescription(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// DecodeDescription decodes and validates a description from r.
func DecodeDescription(r io.Reader) (*Description, error) {
	var d Description
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedExport, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(d.Params, func(i, j int) bool { return d.Params[i].Index < d.Params[j].Index })
	return &d, nil
}

// Encode writes d as indented JSON.
func (d *Description) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Validate checks the structural rules the wrapper relies on.
func (d *Description) Validate() error {
	if d.Params == nil {
		return fmt.Errorf("%w: missing parameters array", ErrMalformedExport)
	}
	if d.NumInputChannels < 0 || d.NumOutputChannels < 0 {
		return fmt.Errorf("%w: negative channel count", ErrMalformedExport)
	}
	if d.NumParameters != 0 && d.NumParameters != len(d.Params) {
		return fmt.Errorf("%w: numParameters is %d but %d parameters listed",
			ErrMalformedExport, d.NumParameters, len(d.Params))
	}

	seenIndex := make(map[int]bool, len(d.Params))
	seenID := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if p.Index < 0 || p.Index >= len(d.Params) {
			return fmt.Errorf("%w: parameter %q has index %d out of range", ErrMalformedExport, p.ParamID, p.Index)
		}
		if seenIndex[p.Index] {
			return fmt.Errorf("%w: duplicate parameter index %d", ErrMalformedExport, p.Index)
		}
		seenIndex[p.Index] = true

		if p.ParamID == "" {
			return fmt.Errorf("%w: parameter %d has no paramId", ErrMalformedExport, p.Index)
		}
		if seenID[p.ParamID] {
			return fmt.Errorf("%w: duplicate parameter id %q", ErrMalformedExport, p.ParamID)
		}
		seenID[p.ParamID] = true

		if p.Minimum > p.Maximum {
			return fmt.Errorf("%w: parameter %q minimum %g exceeds maximum %g",
				ErrMalformedExport, p.ParamID, p.Minimum, p.Maximum)
		}
		if p.Steps < 0 {
			return fmt.Errorf("%w: parameter %q has negative steps", ErrMalformedExport, p.ParamID)
		}
		if p.IsEnum && len(p.EnumValues) == 0 {
			return fmt.Errorf("%w: enum parameter %q has no values", ErrMalformedExport, p.ParamID)
		}
	}
	return nil
}

// Parameters converts the records into engine parameter descriptors,
// ordered by index.
func (d *Description) Parameters() []ParameterInfo {
	out := make([]ParameterInfo, len(d.Params))
	for i, p := range d.Params {
		out[i] = p.Info()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Info converts a record into a ParameterInfo.
func (p DescriptionParameter) Info() ParameterInfo {
	visible := true
	if p.Visible != nil {
		visible = *p.Visible
	}

	var labels []string
	if p.IsEnum || len(p.EnumValues) > 0 {
		labels = make([]string, len(p.EnumValues))
		for i, v := range p.EnumValues {
			labels[i] = enumLabel(v)
		}
	}

	name := p.Name
	if name == "" {
		name = p.ParamID
	}

	return ParameterInfo{
		Index:       p.Index,
		ID:          p.ParamID,
		Name:        name,
		DisplayName: p.DisplayName,
		Unit:        p.Unit,
		Min:         p.Minimum,
		Max:         p.Maximum,
		Steps:       p.Steps,
		EnumValues:  labels,
		Initial:     p.InitialValue,
		Exponent:    p.Exponent,
		Visible:     visible,
	}
}

// DescribeParameter builds the record RNBO would write for info.
func DescribeParameter(info ParameterInfo) DescriptionParameter {
	visible := info.Visible
	values := make([]any, len(info.EnumValues))
	for i, v := range info.EnumValues {
		values[i] = v
	}
	return DescriptionParameter{
		Type:         "ParameterTypeNumber",
		Index:        info.Index,
		Name:         info.Name,
		ParamID:      info.ID,
		Minimum:      info.Min,
		Maximum:      info.Max,
		Exponent:     info.Exponent,
		Steps:        info.Steps,
		InitialValue: info.Initial,
		IsEnum:       info.IsEnum(),
		EnumValues:   values,
		DisplayName:  info.DisplayName,
		Unit:         info.Unit,
		Visible:      &visible,
	}
}

// Describe builds a description from a live engine.
func Describe(p Patch, meta DescriptionMeta) *Description {
	table := Parameters(p)
	d := &Description{
		NumInputChannels:  p.NumInputChannels(),
		NumOutputChannels: p.NumOutputChannels(),
		NumParameters:     len(table),
		Params:            make([]DescriptionParameter, len(table)),
		Meta:              meta,
	}
	for i, info := range table {
		d.Params[i] = DescribeParameter(info)
	}
	return d
}

func enumLabel(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
