package param

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrDuplicateID   = errors.New("duplicate parameter id")
	ErrDuplicateName = errors.New("duplicate parameter name")
)

// Registry holds an instrument's parameters in index order. Lookups take a
// read lock; the audio thread should keep the slice returned by All and read
// values through it instead.
type Registry struct {
	params map[uint32]*Parameter
	names  map[string]uint32
	order  []uint32 // Maintain order for indexed access
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
		names:  make(map[string]uint32),
		order:  make([]uint32, 0),
	}
}

// Add registers parameters in order. IDs and names must be unique.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, exists := r.params[p.ID]; exists {
			return fmt.Errorf("add %q: %w %d", p.Name, ErrDuplicateID, p.ID)
		}
		if _, exists := r.names[p.Name]; exists {
			return fmt.Errorf("add %q: %w", p.Name, ErrDuplicateName)
		}
		r.params[p.ID] = p
		r.names[p.Name] = p.ID
		r.order = append(r.order, p.ID)
	}

	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// GetByName retrieves a parameter by its full name
func (r *Registry) GetByName(name string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.names[name]
	if !ok {
		return nil
	}
	return r.params[id]
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= int32(len(r.order)) {
		return nil
	}

	id := r.order[index]
	return r.params[id]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int32(len(r.order))
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}

	return result
}

// ResetAll restores every parameter to its default
func (r *Registry) ResetAll() {
	for _, p := range r.All() {
		p.Reset()
	}
}
