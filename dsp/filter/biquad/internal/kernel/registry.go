// Package kernel holds the block-processing kernels for a single biquad
// section and selects one at runtime from the detected CPU features.
package kernel

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients mirrors biquad.Coefficients without importing the parent
// package.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// BlockFn filters buf in place and returns the updated delay-line state.
type BlockFn func(c Coefficients, d0, d1 float64, buf []float64) (float64, float64)

// Entry describes one registered kernel.
type Entry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Block     BlockFn
}

// Registry keeps kernels ordered by priority.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

// Default is the registry populated by this package's init functions.
var Default = &Registry{}

// Register adds e, keeping entries sorted by descending priority.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := len(r.entries)
	r.entries = append(r.entries, e)
	for i > 0 && r.entries[i-1].Priority < e.Priority {
		r.entries[i] = r.entries[i-1]
		i--
	}
	r.entries[i] = e
}

// Lookup returns the highest-priority kernel the features support, or nil.
func (r *Registry) Lookup(features cpu.Features) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].SIMDLevel) {
			e := r.entries[i]
			return &e
		}
	}

	return nil
}

// Names lists registered kernels in lookup order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}

	return names
}
