package param

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownParameter is returned for keys outside the definition table.
var ErrUnknownParameter = errors.New("param: unknown parameter")

// Kind tells how a parameter's value is interpreted.
type Kind int

const (
	// Float is a continuous value.
	Float Kind = iota
	// Bool is 0 (off) or 1 (on).
	Bool
	// Choice is an index into Definition.Choices.
	Choice
)

// ID indexes a parameter in the store.
type ID int

// Parameter IDs in definition order.
const (
	Gain ID = iota
	InvertPhaseL
	InvertPhaseR
	Mono
	Pan
	StereoMode
	StereoWidth
	StereoMidSide
	BassMono
	BassMonoFrequency
	BassMonoListening

	// Count is the number of parameters.
	Count int = iota
)

// Stereo mode choices.
const (
	StereoModeWidth   = 0
	StereoModeMidSide = 1
)

// Definition describes one parameter.
type Definition struct {
	ID      ID
	Key     string
	Name    string
	Kind    Kind
	Range   Range
	Default float64
	Unit    string
	Choices []string
}

var definitions = [Count]Definition{
	{
		ID: Gain, Key: "gain", Name: "Gain", Kind: Float,
		Range: Range{Min: -100, Max: 35, Skew: SkewFromMidpoint(-100, 35, 0)},
		Unit:  "dB",
	},
	{ID: InvertPhaseL, Key: "invertPhaseL", Name: "Invert Phase L", Kind: Bool, Range: Range{Max: 1, Skew: 1}},
	{ID: InvertPhaseR, Key: "invertPhaseR", Name: "Invert Phase R", Kind: Bool, Range: Range{Max: 1, Skew: 1}},
	{ID: Mono, Key: "mono", Name: "Mono", Kind: Bool, Range: Range{Max: 1, Skew: 1}},
	{ID: Pan, Key: "pan", Name: "Balance", Kind: Float, Range: Range{Min: -50, Max: 50, Skew: 1}},
	{
		ID: StereoMode, Key: "stereoMode", Name: "Stereo Mode", Kind: Choice,
		Range: Range{Max: 1, Skew: 1}, Choices: []string{"Width", "Mid/Side"},
	},
	{
		ID: StereoWidth, Key: "stereoWidth", Name: "Width", Kind: Float,
		Range:   Range{Min: 0, Max: 400, Skew: SkewFromMidpoint(0, 400, 100)},
		Default: 100, Unit: "%",
	},
	{ID: StereoMidSide, Key: "stereoMidSide", Name: "Mid/Side", Kind: Float, Range: Range{Min: -100, Max: 100, Skew: 1}},
	{ID: BassMono, Key: "isBassMono", Name: "Bass Mono", Kind: Bool, Range: Range{Max: 1, Skew: 1}},
	{
		ID: BassMonoFrequency, Key: "bassMonoFrequency", Name: "Bass Mono Frequency", Kind: Float,
		Range:   Range{Min: 50, Max: 500, Skew: SkewFromMidpoint(50, 500, math.Sqrt(50*500))},
		Default: 120, Unit: "Hz",
	},
	{ID: BassMonoListening, Key: "isBassMonoListening", Name: "Bass Mono Listening", Kind: Bool, Range: Range{Max: 1, Skew: 1}},
}

var byKey = func() map[string]ID {
	m := make(map[string]ID, Count)
	for _, d := range definitions {
		m[d.Key] = d.ID
	}

	return m
}()

// Definitions returns every parameter in ID order.
func Definitions() []Definition {
	out := make([]Definition, Count)
	copy(out, definitions[:])

	return out
}

// Lookup resolves a key such as "stereoWidth".
func Lookup(key string) (ID, error) {
	id, ok := byKey[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
	}

	return id, nil
}

// Valid reports whether id names a parameter.
func (id ID) Valid() bool { return id >= 0 && int(id) < Count }

// Definition returns the definition of id.
func (id ID) Definition() Definition {
	return definitions[id]
}

func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", int(id))
	}

	return definitions[id].Key
}

// Sanitize clamps v into the parameter's range and rounds bool and choice
// values. NaN becomes the default.
func (d Definition) Sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return d.Default
	}

	v = d.Range.Clamp(v)
	if d.Kind != Float {
		v = math.Round(v)
	}

	return v
}
