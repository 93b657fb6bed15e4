package platforms

import (
	"fmt"
	"sort"

	"github.com/lms/backend/internal/domain/integration"
)

// Registry is the static adapter registry. The platform set is closed;
// wiring a new platform means adding its adapter here and nowhere else.
type Registry struct {
	adapters map[integration.PlatformCode]integration.PlatformAdapter
}

// NewRegistry creates a registry over the given adapters. A duplicate
// platform code panics at wiring time rather than shadowing silently.
func NewRegistry(adapters ...integration.PlatformAdapter) *Registry {
	m := make(map[integration.PlatformCode]integration.PlatformAdapter, len(adapters))
	for _, a := range adapters {
		code := a.PlatformCode()
		if _, exists := m[code]; exists {
			panic(fmt.Sprintf("platforms: duplicate adapter for %s", code))
		}
		m[code] = a
	}
	return &Registry{adapters: m}
}

// NewDefaultRegistry wires the production adapter set.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		NewCourseraAdapter(nil),
		NewPluralsightAdapter(nil),
		NewUdemyAdapter(nil),
	)
}

// GetAdapter returns the adapter for the code, or ErrUnknownPlatform
func (r *Registry) GetAdapter(code integration.PlatformCode) (integration.PlatformAdapter, error) {
	adapter, ok := r.adapters[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", integration.ErrUnknownPlatform, code)
	}
	return adapter, nil
}

// ListAdapters returns all registered adapters in platform code order
func (r *Registry) ListAdapters() []integration.PlatformAdapter {
	out := make([]integration.PlatformAdapter, 0, len(r.adapters))
	for _, a := range r.adapters {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlatformCode() < out[j].PlatformCode()
	})
	return out
}

// Ensure Registry implements AdapterRegistry interface
var _ integration.AdapterRegistry = (*Registry)(nil)
