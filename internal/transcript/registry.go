package transcript

import "sync"

// Registry remembers the replacement the learner last confirmed for
// each error text. Entries are overwritten, never pruned; the engine
// writes on every confirmed correction but nothing reads the map back
// into suggestion ordering yet. Reset clears it with the history.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]string)}
}

// Put records the chosen replacement for an error text.
func (r *Registry) Put(errorText, replacement string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[errorText] = replacement
}

// Get returns the last confirmed replacement for an error text.
func (r *Registry) Get(errorText string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.entries[errorText]
	return rep, ok
}

// All returns a copy of every entry.
func (r *Registry) All() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset drops all entries.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]string)
}
