package param

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Values is a copy of every parameter, indexed by ID.
type Values [Count]float64

// Get returns the value of id.
func (v *Values) Get(id ID) float64 { return v[id] }

// Bool reports whether id is non-zero.
func (v *Values) Bool(id ID) bool { return v[id] >= 0.5 }

// Store holds the current plain value of every parameter.
type Store struct {
	bits [Count]atomic.Uint64
}

// NewStore returns a store holding the defaults.
func NewStore() *Store {
	s := &Store{}
	s.Reset()

	return s
}

// Reset restores every default.
func (s *Store) Reset() {
	for i := range s.bits {
		s.bits[i].Store(math.Float64bits(definitions[i].Default))
	}
}

// Load reads id. It is safe on the audio thread.
func (s *Store) Load(id ID) float64 {
	return math.Float64frombits(s.bits[id].Load())
}

// Store writes id after sanitizing v.
func (s *Store) Store(id ID, v float64) {
	s.bits[id].Store(math.Float64bits(definitions[id].Sanitize(v)))
}

// Snapshot copies every value. It does not allocate.
func (s *Store) Snapshot() Values {
	var v Values
	for i := range s.bits {
		v[i] = math.Float64frombits(s.bits[i].Load())
	}

	return v
}

// Set writes a plain value by key.
func (s *Store) Set(key string, v float64) error {
	id, err := Lookup(key)
	if err != nil {
		return err
	}

	s.Store(id, v)

	return nil
}

// Get reads a plain value by key.
func (s *Store) Get(key string) (float64, error) {
	id, err := Lookup(key)
	if err != nil {
		return 0, err
	}

	return s.Load(id), nil
}

// SetNormalized writes a 0..1 value by key.
func (s *Store) SetNormalized(key string, n float64) error {
	id, err := Lookup(key)
	if err != nil {
		return err
	}

	if math.IsNaN(n) {
		return fmt.Errorf("param: %s: normalized value is NaN", key)
	}

	s.Store(id, definitions[id].Range.Denormalize(n))

	return nil
}

// Normalized reads a value by key as 0..1.
func (s *Store) Normalized(key string) (float64, error) {
	id, err := Lookup(key)
	if err != nil {
		return 0, err
	}

	return definitions[id].Range.Normalize(s.Load(id)), nil
}
