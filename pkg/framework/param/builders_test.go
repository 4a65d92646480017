package param

import (
	"math"
	"testing"
)

func TestChoice(t *testing.T) {
	options := []ChoiceOption{
		{Value: 0, Name: "Off", Aliases: []string{"disabled", "none"}},
		{Value: 1, Name: "Low", Aliases: []string{"lo", "minimum"}},
		{Value: 2, Name: "Medium", Aliases: []string{"med", "mid", "normal"}},
		{Value: 3, Name: "High", Aliases: []string{"hi", "maximum"}},
	}

	param := Choice(100, "Mode", options).Build()

	t.Run("Formatter", func(t *testing.T) {
		tests := []struct {
			value    float64
			expected string
		}{
			{0, "Off"},
			{1, "Low"},
			{2, "Medium"},
			{3, "High"},
		}

		for _, test := range tests {
			// Need to normalize the value first
			normalized := test.value / 3.0 // 0-3 range
			result := param.FormatValue(normalized)
			if result != test.expected {
				t.Errorf("FormatValue(%f) = %s, want %s", test.value, result, test.expected)
			}
		}
	})

	t.Run("Parser", func(t *testing.T) {
		tests := []struct {
			input         string
			expectedPlain float64
		}{
			{"Off", 0},
			{"disabled", 0},
			{"Low", 1},
			{"lo", 1},
			{"Medium", 2},
			{"med", 2},
			{"High", 3},
			{"hi", 3},
		}

		for _, test := range tests {
			normalized, err := param.ParseValue(test.input)
			if err != nil {
				t.Errorf("ParseValue(%s) error: %v", test.input, err)
				continue
			}
			plain := param.Denormalize(normalized)
			if math.Abs(plain-test.expectedPlain) > 0.001 {
				t.Errorf("ParseValue(%s) = %f (plain), want %f", test.input, plain, test.expectedPlain)
			}
		}
	})
}


func TestToggle(t *testing.T) {
	p := New(1, "Enable").Toggle().Default(1).Build()

	if p.StepCount != 1 {
		t.Fatalf("StepCount = %d, want 1", p.StepCount)
	}
	if got := p.FormatValue(1); got != "On" {
		t.Errorf("FormatValue(1) = %q, want On", got)
	}
	if got := p.FormatValue(0.2); got != "Off" {
		t.Errorf("FormatValue(0.2) = %q, want Off", got)
	}
	if p.GetValue() != 1 {
		t.Errorf("default = %f, want 1", p.GetValue())
	}
}

func TestBuilderDefaultResolvedAtBuild(t *testing.T) {
	// Default before Range must still land in the final range.
	p := New(2, "Cutoff").Default(500).Range(0, 1000).Build()

	if math.Abs(p.GetPlainValue()-500) > 1e-9 {
		t.Errorf("plain = %f, want 500", p.GetPlainValue())
	}
	if math.Abs(p.DefaultValue-0.5) > 1e-9 {
		t.Errorf("DefaultValue = %f, want 0.5", p.DefaultValue)
	}
}
