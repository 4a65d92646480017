package param

import (
	"fmt"
	"strings"

	"github.com/justyntemme/rnbossp/pkg/rnbo"
)

// Kind is the framework parameter type chosen for an engine parameter.
type Kind int

const (
	KindFloat Kind = iota
	KindBool
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChoice:
		return "choice"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Classify picks the parameter kind for an engine descriptor. Enumeration
// labels win over the step count.
func Classify(info rnbo.ParameterInfo) Kind {
	switch {
	case info.IsEnum():
		return KindChoice
	case info.Steps == 2:
		return KindBool
	default:
		return KindFloat
	}
}

// BypassID is the engine parameter id flagged as the plugin bypass when it
// reflects to a boolean.
const BypassID = "bypass"

// Binding ties an engine parameter index to the framework parameter built
// for it.
type Binding struct {
	Index int
	Info  rnbo.ParameterInfo
	Kind  Kind
	Param *Parameter
}

// FromInfo builds the framework parameter for one engine descriptor. The
// parameter ID is the engine index. An invisible descriptor yields a
// parameter flagged IsHidden; Reflect never registers those, but callers
// building parameters one at a time get the flag.
func FromInfo(info rnbo.ParameterInfo) *Parameter {
	id := uint32(info.Index)
	name := info.Label()

	var b *Builder
	switch Classify(info) {
	case KindChoice:
		b = Choice(id, name, ChoiceOptions(info.EnumValues...))
	case KindBool:
		mid := (info.Min + info.Max) / 2
		b = New(id, name).
			Range(info.Min, info.Max).
			Steps(1).
			Formatter(func(v float64) string {
				if v > mid {
					return "On"
				}
				return "Off"
			}, func(s string) (float64, error) {
				v, err := OnOffParser(s)
				if err != nil {
					return 0, err
				}
				if v > 0 {
					return info.Max, nil
				}
				return info.Min, nil
			})
		if strings.EqualFold(info.ID, BypassID) {
			b.Bypass()
		}
	default:
		b = New(id, name).Range(info.Min, info.Max).Unit(info.Unit)
		if info.Steps > 2 {
			b.Steps(int32(info.Steps - 1))
		}
		if f, ok := ForUnit(info.Unit); ok {
			b.Formatter(f.Format, f.Parse)
		}
	}

	b.Key(info.ID).Default(info.Initial)
	if !info.Visible {
		b.Hidden()
	}
	return b.Build()
}

// Reflect walks the engine parameter table once, skipping invisible
// entries, and returns the bindings in table order together with a registry
// holding the built parameters.
func Reflect(p rnbo.Patch) ([]Binding, *Registry, error) {
	reg := NewRegistry()
	n := p.NumParameters()
	bindings := make([]Binding, 0, n)

	for i := 0; i < n; i++ {
		info := p.ParameterInfo(i)
		if !info.Visible {
			continue
		}
		info.Index = i
		prm := FromInfo(info)
		if err := reg.Add(prm); err != nil {
			return nil, nil, fmt.Errorf("reflect parameter %d (%s): %w", i, info.ID, err)
		}
		bindings = append(bindings, Binding{
			Index: i,
			Info:  info,
			Kind:  Classify(info),
			Param: prm,
		})
	}

	return bindings, reg, nil
}
