// Package airport implements the §4.K airport/runway configurator: a
// thin, mutex-guarded snapshot of active departure/arrival runways per
// ICAO, plus the "best SID/STAR" selection heuristic that scans the
// procedure store for a procedure whose runway is active and whose fix
// list contains the route's first (or last) enroute waypoint.
package airport

import (
	"sync"

	"github.com/neoradar-project/route-handler-sub000/pkg/procedure"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

// Runways is the active departure/arrival runway set for one airport.
type Runways struct {
	Departures []string
	Arrivals   []string
}

// Configurator holds the active-runway snapshot consumed by the SID/STAR
// selection heuristic. All protected data is behind a single mutex;
// SetActiveRunways replaces an airport's whole runway set (with copied
// slices) rather than mutating it in place, per §5's "written in full
// snapshots" policy.
type Configurator struct {
	mu       sync.Mutex
	runways  map[string]Runways
	procedures *procedure.Store
}

// NewConfigurator builds a Configurator backed by store for procedure
// lookups. store is read-only from the configurator's perspective.
func NewConfigurator(store *procedure.Store) *Configurator {
	return &Configurator{runways: make(map[string]Runways), procedures: store}
}

// SetActiveRunways atomically replaces the runway set for icao.
func (c *Configurator) SetActiveRunways(icao string, departures, arrivals []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runways[icao] = Runways{
		Departures: append([]string(nil), departures...),
		Arrivals:   append([]string(nil), arrivals...),
	}
}

func (c *Configurator) DepartureRunways(icao string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.runways[icao].Departures...)
}

func (c *Configurator) ArrivalRunways(icao string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.runways[icao].Arrivals...)
}

// pick is the shared "scan procedures for a matching active runway, else
// first active runway" rule from §4.K, parameterized over procedure type
// and which end of waypoints to match against.
func (c *Configurator) pick(icao string, active []string, procType route.ProcedureType, matchWaypoint string) (runway string, proc route.Procedure, hasProc bool) {
	if len(active) == 0 {
		return "", route.Procedure{}, false
	}

	activeSet := make(map[string]bool, len(active))
	for _, r := range active {
		activeSet[r] = true
	}

	for _, p := range c.procedures.ProceduresForAirport(icao) {
		if p.Type != procType || !activeSet[p.Runway] {
			continue
		}
		for _, wpt := range p.Waypoints {
			if wpt.Identifier == matchWaypoint {
				return p.Runway, p, true
			}
		}
	}

	return active[0], route.Procedure{}, false
}

// PickDeparture implements FindBestSID: given icao and the route's
// waypoint identifiers, returns the active departure runway best matching
// a known SID whose fix list contains the first waypoint, or the first
// active runway with no procedure if none matches.
func (c *Configurator) PickDeparture(icao string, waypoints []string) (runway string, proc route.Procedure, hasProc bool, ok bool) {
	if len(waypoints) == 0 {
		return "", route.Procedure{}, false, false
	}
	active := c.DepartureRunways(icao)
	if len(active) == 0 {
		return "", route.Procedure{}, false, false
	}
	runway, proc, hasProc = c.pick(icao, active, route.SID, waypoints[0])
	return runway, proc, hasProc, true
}

// PickArrival is PickDeparture's STAR counterpart, matching against the
// route's last waypoint.
func (c *Configurator) PickArrival(icao string, waypoints []string) (runway string, proc route.Procedure, hasProc bool, ok bool) {
	if len(waypoints) == 0 {
		return "", route.Procedure{}, false, false
	}
	active := c.ArrivalRunways(icao)
	if len(active) == 0 {
		return "", route.Procedure{}, false, false
	}
	runway, proc, hasProc = c.pick(icao, active, route.STAR, waypoints[len(waypoints)-1])
	return runway, proc, hasProc, true
}
