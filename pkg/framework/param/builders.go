package param

import (
	"fmt"
	"strconv"
	"strings"
)

// ChoiceOption represents an option in a choice parameter
type ChoiceOption struct {
	Value   float64
	Name    string
	Aliases []string
}

// Choice creates a parameter builder for a multiple choice parameter.
// Options are expected to carry consecutive values starting at 0.
func Choice(id uint32, name string, options []ChoiceOption) *Builder {
	formatter := func(value float64) string {
		for _, opt := range options {
			if opt.Value == value {
				return opt.Name
			}
		}
		// Fallback to index-based lookup for integer values
		index := int(value)
		if index >= 0 && index < len(options) {
			return options[index].Name
		}
		return "Unknown"
	}

	parser := func(str string) (float64, error) {
		trimmed := strings.TrimSpace(str)
		for _, opt := range options {
			if strings.EqualFold(trimmed, opt.Name) {
				return opt.Value, nil
			}
			for _, alias := range opt.Aliases {
				if strings.EqualFold(trimmed, alias) {
					return opt.Value, nil
				}
			}
		}
		return 0, fmt.Errorf("unknown option: %s", str)
	}

	maxValue := float64(len(options) - 1)
	steps := int32(len(options) - 1)
	if len(options) < 2 {
		maxValue, steps = 0, 0
	}

	return New(id, name).
		Range(0, maxValue).
		Steps(steps).
		List().
		Formatter(formatter, parser)
}

// ChoiceOptions builds consecutive options from labels.
func ChoiceOptions(labels ...string) []ChoiceOption {
	options := make([]ChoiceOption, len(labels))
	for i, label := range labels {
		options[i] = ChoiceOption{Value: float64(i), Name: label}
	}
	return options
}

// Helper function to parse float with error handling
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

func trimUnit(s, unit string) string {
	s = strings.TrimSpace(s)
	if unit != "" {
		s = strings.TrimSpace(strings.TrimSuffix(s, unit))
	}
	return s
}
