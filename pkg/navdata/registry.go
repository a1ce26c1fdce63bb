package navdata

import (
	"errors"
	"sort"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
	applog "github.com/neoradar-project/route-handler-sub000/pkg/log"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

// Sentinel errors for construction-time conditions a caller may want to
// branch on, per §10: these never surface from Parse itself (domain
// failures there are data, not errors), only from registry setup/inspection.
var (
	// ErrUnknownProvider is returned by Provider when no provider by that
	// name has been added to the registry.
	ErrUnknownProvider = errors.New("navdata: unknown provider")
	// ErrEmptyRegistry is returned by RequireProviders when a registry with
	// zero successfully-initialized providers is about to be handed to a
	// parser, which would silently resolve every waypoint to nothing.
	ErrEmptyRegistry = errors.New("navdata: registry has no initialized providers")
)

// Registry is the read-only, post-initialization waypoint lookup the
// parser consults: a priority-ordered list of Providers plus an optional
// miss-then-hit cache. It is built once at startup (AddProvider calls,
// each of which initializes the provider it adds) and never mutated
// again once a parse call may be in flight.
type Registry struct {
	mu        sync.Mutex
	providers []Provider
	cache     map[string][]route.Waypoint
	useCache  bool
	logger    *applog.Logger
}

// NewRegistry constructs an empty Registry. useCache enables the optional
// miss-then-hit cache described in §4.A; it's off by default for
// deployments with a small enough navdata set that caching adds no value.
func NewRegistry(logger *applog.Logger, useCache bool) *Registry {
	r := &Registry{useCache: useCache, logger: logger}
	if useCache {
		r.cache = make(map[string][]route.Waypoint)
	}
	return r
}

// AddProvider initializes p and, on success, inserts it into the
// priority-ordered provider list. A provider that fails to initialize is
// skipped with a warning rather than added in a half-ready state.
func (r *Registry) AddProvider(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := p.Initialize(); err != nil {
		r.logger.Warnf("navdata: provider %s failed to initialize: %v", p.Name(), err)
		return
	}
	if !p.IsInitialized() {
		r.logger.Warnf("navdata: provider %s reports not initialized after Initialize()", p.Name())
		return
	}

	r.providers = append(r.providers, p)
	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Priority() < r.providers[j].Priority()
	})
}

// ProviderNames returns the registry's providers in priority order, for
// diagnostics and tests.
func (r *Registry) ProviderNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}

// FindAll consults providers in priority order and returns the first
// non-empty result. An empty identifier is a usage error: it's logged and
// an empty slice is returned rather than matching everything.
func (r *Registry) FindAll(identifier string) []route.Waypoint {
	if identifier == "" {
		r.logger.Errorf("navdata: empty waypoint identifier requested")
		return nil
	}

	if r.useCache {
		r.mu.Lock()
		if cached, ok := r.cache[identifier]; ok {
			r.mu.Unlock()
			return cached
		}
		r.mu.Unlock()
	}

	r.mu.Lock()
	providers := append([]Provider(nil), r.providers...)
	r.mu.Unlock()

	for _, p := range providers {
		if !p.IsInitialized() {
			r.logger.Warnf("navdata: skipping uninitialized provider %s", p.Name())
			continue
		}
		if results := p.FindAll(identifier); len(results) > 0 {
			if r.useCache {
				r.mu.Lock()
				r.cache[identifier] = results
				r.mu.Unlock()
			}
			return results
		}
	}

	return nil
}

// FindClosest returns the member of FindAll(identifier) minimizing
// great-circle distance to ref, breaking ties by earliest insertion order.
func (r *Registry) FindClosest(identifier string, ref geo.Point) (route.Waypoint, bool) {
	candidates := r.FindAll(identifier)
	if len(candidates) == 0 {
		return route.Waypoint{}, false
	}

	points := make([]geo.Point, len(candidates))
	for i, c := range candidates {
		points[i] = c.Position
	}
	return candidates[geo.Closest(ref, points)], true
}

// FindClosestTo is FindClosest with an optional reference waypoint: when
// ref is absent, the first match's own position is used as the reference,
// so a single match always succeeds regardless of where the caller's
// rolling position currently is.
func (r *Registry) FindClosestTo(identifier string, ref *route.Waypoint) (route.Waypoint, bool) {
	candidates := r.FindAll(identifier)
	if len(candidates) == 0 {
		return route.Waypoint{}, false
	}

	refPoint := candidates[0].Position
	if ref != nil {
		refPoint = ref.Position
	}

	points := make([]geo.Point, len(candidates))
	for i, c := range candidates {
		points[i] = c.Position
	}
	return candidates[geo.Closest(refPoint, points)], true
}

// Provider looks up a previously-added provider by name, for diagnostics
// and for deployments that want to probe a specific source directly
// (bypassing priority order). Returns ErrUnknownProvider if none matches.
func (r *Registry) Provider(name string) (Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, ErrUnknownProvider
}

// RequireProviders is a construction-time sanity check: it returns
// ErrEmptyRegistry if no provider has been successfully added, catching the
// "forgot to load any navdata" mistake before the registry is handed to a
// Parser rather than letting every lookup silently miss.
func (r *Registry) RequireProviders() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.providers) == 0 {
		return ErrEmptyRegistry
	}
	return nil
}

// CacheKeys returns the identifiers currently held in the optional cache,
// used by tests and diagnostics dumps to confirm miss-then-hit population
// without reaching into registry internals.
func (r *Registry) CacheKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache == nil {
		return nil
	}
	return maps.Keys(r.cache)
}
