// Package navdata implements the priority-ordered, multi-provider
// waypoint lookup described in §4.A: a single Registry fronting one or
// more Providers (NSE overrides, bulk navdata, airway-derived fixes),
// returning the first non-empty provider's results and, when asked,
// the single closest candidate to a rolling reference point.
package navdata

import "github.com/neoradar-project/route-handler-sub000/pkg/route"

// Priority gives the canonical provider priorities from §4.A: lower wins.
type Priority int

const (
	PriorityNSE     Priority = 1
	PriorityNavdata Priority = 2
	PriorityAirway  Priority = 3
)

// Provider is the single capability every waypoint source exposes: find
// all candidates for an identifier, report readiness, and carry a name and
// priority for the registry to sort on. There is no deeper hierarchy here
// — an in-memory map and a SQL-backed lookup both satisfy this interface.
type Provider interface {
	FindAll(identifier string) []route.Waypoint
	Initialize() error
	IsInitialized() bool
	Name() string
	Priority() Priority
}
