package navdata

import "github.com/neoradar-project/route-handler-sub000/pkg/route"

// MapProvider is an in-memory Provider backed by a plain identifier ->
// candidates map, the Go analog of the reference implementation's
// NseWaypointProvider. It's used directly for NSE overrides and is also
// the shape internal/loader builds from bulk-loaded intersection/airway
// text files once they've been read into memory.
type MapProvider struct {
	name        string
	priority    Priority
	byID        map[string][]route.Waypoint
	initialized bool
}

// NewMapProvider builds a MapProvider from a flat waypoint list, grouping
// by identifier the way the reference constructor does.
func NewMapProvider(name string, priority Priority, waypoints []route.Waypoint) *MapProvider {
	byID := make(map[string][]route.Waypoint)
	for _, w := range waypoints {
		byID[w.Identifier] = append(byID[w.Identifier], w)
	}
	return &MapProvider{name: name, priority: priority, byID: byID}
}

func (p *MapProvider) FindAll(identifier string) []route.Waypoint {
	if !p.initialized || identifier == "" {
		return nil
	}
	return p.byID[identifier]
}

func (p *MapProvider) Initialize() error {
	p.initialized = true
	return nil
}

func (p *MapProvider) IsInitialized() bool { return p.initialized }
func (p *MapProvider) Name() string        { return p.name }
func (p *MapProvider) Priority() Priority  { return p.priority }

// Add appends a waypoint to the provider's index directly, letting callers
// (loaders) build a provider incrementally rather than collecting a full
// slice up front.
func (p *MapProvider) Add(w route.Waypoint) {
	p.byID[w.Identifier] = append(p.byID[w.Identifier], w)
}
