// Package route holds the data model shared by every stage of the parser:
// waypoints, route waypoints, procedures, parsed routes, and diagnostics.
// None of these types carry behavior beyond small, pure helpers; the
// components in pkg/navdata, pkg/procedure, pkg/airway, and pkg/parser
// build and consume them.
package route

import (
	"fmt"

	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
)

// WaypointKind distinguishes the physical nature of a Waypoint.
type WaypointKind int

const (
	Fix WaypointKind = iota
	VOR
	DME
	TACAN
	NDB
	Airport
	LatLon
)

func (k WaypointKind) String() string {
	switch k {
	case Fix:
		return "FIX"
	case VOR:
		return "VOR"
	case DME:
		return "DME"
	case TACAN:
		return "TACAN"
	case NDB:
		return "NDB"
	case Airport:
		return "AIRPORT"
	case LatLon:
		return "LATLON"
	default:
		return "UNKNOWN"
	}
}

// Waypoint is a named point used for navigation. Two waypoints are equal
// iff their identifier and position match exactly; the identifier alone is
// not unique across the dataset.
type Waypoint struct {
	Kind         WaypointKind
	Identifier   string
	Position     Point
	FrequencyHz  uint64
	HasFrequency bool
}

// Point aliases geo.Point so call sites that only touch route types don't
// need a separate import for the position field.
type Point = geo.Point

// Equal implements the identifier+position equality rule from the data model.
func (w Waypoint) Equal(o Waypoint) bool {
	return w.Identifier == o.Identifier && w.Position == o.Position
}

func (w Waypoint) String() string {
	return fmt.Sprintf("%s(%s)", w.Identifier, w.Kind)
}

// FlightRule is the ICAO flight rule in effect for a route waypoint.
type FlightRule int

const (
	IFR FlightRule = iota
	VFR
)

func (r FlightRule) String() string {
	if r == VFR {
		return "VFR"
	}
	return "IFR"
}

// AltitudeUnit and SpeedUnit enumerate the units a planned restriction may
// be expressed in, per the token shape recognizer (pkg/token).
type AltitudeUnit int

const (
	Feet AltitudeUnit = iota
	Meters
)

func (u AltitudeUnit) String() string {
	if u == Meters {
		return "METERS"
	}
	return "FEET"
}

type SpeedUnit int

const (
	Knots SpeedUnit = iota
	Mach
	KMH
)

func (u SpeedUnit) String() string {
	switch u {
	case Mach:
		return "MACH"
	case KMH:
		return "KMH"
	default:
		return "KNOTS"
	}
}

// PlannedAltitudeSpeed is the optional filed altitude/speed pair carried by
// a RouteWaypoint or by the first token of a route.
type PlannedAltitudeSpeed struct {
	HasAltitude  bool
	AltitudeVal  int
	AltitudeUnit AltitudeUnit
	HasSpeed     bool
	SpeedVal     int
	SpeedUnit    SpeedUnit
}

// RouteWaypoint is a Waypoint plus the flight-plan context in effect at the
// token that produced it.
type RouteWaypoint struct {
	Waypoint
	FlightRule FlightRule
	Planned    PlannedAltitudeSpeed
}
