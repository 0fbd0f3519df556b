package license

import (
	"fmt"
	"sort"
	"sync"
)

// Manifest describes an installed business module.
type Manifest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Registry is the statically compiled module catalog. Modules register
// explicitly at startup; there is no filesystem scanning or runtime code
// loading. Reads are concurrency-safe.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Manifest
}

// NewRegistry returns an empty module registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Manifest)}
}

// Register adds a module manifest. Panics on an empty slug or a duplicate
// registration to fail fast on wiring mistakes during startup.
func (r *Registry) Register(m Manifest) {
	if m.Slug == "" {
		panic("license: module manifest requires a slug")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[m.Slug]; exists {
		panic(fmt.Sprintf("license: module %q registered twice", m.Slug))
	}
	r.modules[m.Slug] = m
}

// ListInstalledModules returns all registered manifests sorted by slug.
func (r *Registry) ListInstalledModules() []Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Manifest, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// GetModuleManifest returns the manifest for a slug.
// Returns ErrModuleNotRegistered for unknown slugs.
func (r *Registry) GetModuleManifest(slug string) (Manifest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.modules[slug]
	if !exists {
		return Manifest{}, fmt.Errorf("%w: %s", ErrModuleNotRegistered, slug)
	}
	return m, nil
}

// Installed reports whether a slug is registered.
func (r *Registry) Installed(slug string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.modules[slug]
	return exists
}
