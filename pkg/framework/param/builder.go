package param

import (
	"fmt"
	"math"
	"strings"
)

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:           id,
			Name:         name,
			ShortName:    name,
			Min:          0,
			Max:          1,
			DefaultValue: 0,
			Flags:        CanAutomate,
		},
	}
}

// ShortName sets the short name
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default value (in plain range, not normalized)
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = b.param.Normalize(value)
	return b
}

// DefaultNormalized sets the default value directly in 0-1
func (b *Builder) DefaultNormalized(value float64) *Builder {
	b.param.DefaultValue = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Steps sets the number of discrete steps
func (b *Builder) Steps(count int32) *Builder {
	b.param.StepCount = count
	return b
}

// Flags sets parameter flags
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// ReadOnly marks the parameter as read-only
func (b *Builder) ReadOnly() *Builder {
	b.param.Flags |= IsReadOnly
	b.param.Flags &^= CanAutomate
	return b
}

// Hidden marks the parameter as hidden
func (b *Builder) Hidden() *Builder {
	b.param.Flags |= IsHidden
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter
func (b *Builder) Build() *Parameter {
	b.param.SetValue(b.param.DefaultValue)
	return b.param
}

// Choice creates a list parameter over names. The normalized range is split
// into len(names) equal buckets, floor(v*len) selects one and 1.0 selects the
// last entry.
func Choice(id uint32, name string, names []string) *Builder {
	n := float64(len(names))
	format := func(v float64) string {
		if len(names) == 0 {
			return ""
		}
		return names[ChoiceIndex(v, len(names))]
	}
	parse := func(str string) (float64, error) {
		for i, opt := range names {
			if strings.EqualFold(strings.TrimSpace(str), opt) {
				return float64(i) / n, nil
			}
		}
		return 0, fmt.Errorf("unknown option: %s", str)
	}

	return New(id, name).
		Steps(int32(len(names)-1)).
		Flags(CanAutomate|IsList).
		Formatter(format, parse)
}

// ChoiceIndex maps a normalized value onto one of count buckets. NaN and
// negative values select the first.
func ChoiceIndex(v float64, count int) int {
	if count <= 0 || !(v > 0) {
		return 0
	}
	i := int(math.Floor(v * float64(count)))
	if i >= count {
		return count - 1
	}
	return i
}

// Percent creates a 0-1 parameter displayed as 0-100%
func Percent(id uint32, name string) *Builder {
	return New(id, name).
		Range(0, 100).
		Unit("%").
		Formatter(PercentFormatter, PercentParser)
}

// Pan creates a -1..1 balance parameter, centered by default
func Pan(id uint32, name string) *Builder {
	return New(id, name).
		Range(-1, 1).
		Default(0).
		Formatter(PanFormatter, PanParser)
}

// Seconds creates a duration parameter spanning 0..max seconds, displayed in
// milliseconds.
func Seconds(id uint32, name string, max float64) *Builder {
	return New(id, name).
		Range(0, max).
		Unit("s").
		Formatter(MillisecondsFormatter, MillisecondsParser)
}

// PitchBend creates a parameter over the 14-bit bend range
func PitchBend(id uint32, name string) *Builder {
	return New(id, name).
		Range(-8192, 8192).
		Default(0).
		Formatter(PitchBendFormatter, PitchBendParser)
}
