package urid

import "sync"

// URID is a process-local integer substituted for a URI string.
//
// URIDs are resolved once through a Map capability supplied by the host and
// compared as plain integers afterwards. Zero is never a valid URID.
type URID uint32

// Invalid is the zero URID, returned for unmapped URIs.
const Invalid URID = 0

// Map is the URI mapping capability a host provides at instantiation.
//
// Implementations must return the same URID for the same URI for the
// lifetime of the process, and must never return Invalid for a valid URI.
type Map interface {
	Map(uri string) URID
}

// Unmap is the optional reverse mapping capability.
type Unmap interface {
	Unmap(id URID) string
}

// Registry is an in-memory Map implementation for host-side use.
//
// IDs are assigned monotonically starting at 1 and are stable across
// repeated lookups. Registry is safe for concurrent use.
type Registry struct {
	mu   sync.Mutex
	ids  map[string]URID
	uris map[URID]string
	next URID
}

// NewRegistry creates an empty URID registry.
func NewRegistry() *Registry {
	return &Registry{
		ids:  make(map[string]URID, 16),
		uris: make(map[URID]string, 16),
		next: 1,
	}
}

// Map returns the URID for uri, assigning a new one on first use.
// The empty URI maps to Invalid.
func (r *Registry) Map(uri string) URID {
	if uri == "" {
		return Invalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids[uri]; ok {
		return id
	}

	id := r.next
	r.next++
	r.ids[uri] = id
	r.uris[id] = uri

	return id
}

// Unmap returns the URI previously mapped to id, or "" if unknown.
func (r *Registry) Unmap(id URID) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.uris[id]
}

// Len reports how many URIs have been mapped.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.ids)
}
