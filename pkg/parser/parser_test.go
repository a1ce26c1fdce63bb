package parser

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/neoradar-project/route-handler-sub000/pkg/airway"
	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
	"github.com/neoradar-project/route-handler-sub000/pkg/navdata"
	"github.com/neoradar-project/route-handler-sub000/pkg/procedure"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

func wpt(id string, lat, lon float64) route.Waypoint {
	return route.Waypoint{Kind: route.Fix, Identifier: id, Position: geo.Point{LatDeg: lat, LonDeg: lon}}
}

func newTestParser(waypoints []route.Waypoint, procs []route.Procedure) *Parser {
	reg := navdata.NewRegistry(nil, false)
	reg.AddProvider(navdata.NewMapProvider("test", navdata.PriorityNavdata, waypoints))

	store := procedure.NewStore()
	for _, p := range procs {
		store.Add(p)
	}

	net := airway.NewNetwork(nil)
	net.Finalize()

	return New(reg, store, net, nil)
}

// Scenario 1 from the testable-properties list: a route naming a known
// SID and STAR by name only (no runway suffix) with both procedures and
// both intermediate fixes present in the test navdata.
func TestParseScenario1KnownSIDAndSTAR(t *testing.T) {
	waypoints := []route.Waypoint{
		wpt("KSFO", 37.6, -122.4),
		wpt("PAINT", 36, -120),
		wpt("KMAE", 36.5, -119.7),
		wpt("KLAX", 33.9, -118.4),
	}
	procs := []route.Procedure{
		{Name: "SNTNA2", AirportICAO: "KSFO", Runway: "01L", Type: route.SID, Waypoints: []route.Waypoint{wpt("SNTNA", 37, -121)}},
		{Name: "KAYAK3", AirportICAO: "KLAX", Runway: "25L", Type: route.STAR, Waypoints: []route.Waypoint{wpt("KAYAK", 34, -119)}},
	}
	p := newTestParser(waypoints, procs)

	result := p.Parse("KSFO SNTNA2 PAINT KMAE KAYAK3 KLAX", "KSFO", "KLAX", route.IFR)

	if !result.HasSID || result.SID != "SNTNA2" {
		t.Errorf("expected sid SNTNA2, got %s", spew.Sdump(result))
	}
	if !result.HasSTAR || result.STAR != "KAYAK3" {
		t.Errorf("expected star KAYAK3, got %s", spew.Sdump(result))
	}
	if result.HasErrorLevel(route.Error) {
		t.Errorf("expected no Error-level diagnostics, got %s", spew.Sdump(result.Errors))
	}

	var haveWaypoint = func(id string) bool {
		for _, w := range result.Waypoints {
			if w.Identifier == id {
				return true
			}
		}
		return false
	}
	if !haveWaypoint("PAINT") || !haveWaypoint("KMAE") {
		t.Errorf("expected PAINT and KMAE in route, got %s", spew.Sdump(result.Waypoints))
	}
}

// Scenario 2: procedure tokens carry runway suffixes and the dataset only
// knows a subset of the enroute fixes; the airway-shaped middle tokens
// aren't registered as airways, so they fall through to UnknownWaypoint.
func TestParseScenario2RunwaysAndUnknownTokens(t *testing.T) {
	waypoints := []route.Waypoint{
		wpt("ZSNJ", 32, 118),
		wpt("VHHH", 22, 114),
		wpt("TESIG", 30, 117),
		wpt("DOTMI", 26, 115),
		wpt("ABBEY", 23, 114.5),
	}
	procs := []route.Procedure{
		{Name: "TES61X", AirportICAO: "ZSNJ", Runway: "06", Type: route.SID, Waypoints: []route.Waypoint{wpt("TES61", 31, 118)}},
		{Name: "ABBEY3A", AirportICAO: "VHHH", Runway: "07R", Type: route.STAR, Waypoints: []route.Waypoint{wpt("ABB3", 23, 114)}},
	}
	p := newTestParser(waypoints, procs)

	result := p.Parse("TES61X/06 TESIG A470 DOTMI V512 ABBEY ABBEY3A/07R", "ZSNJ", "VHHH", route.IFR)

	if result.TotalTokens != 7 {
		t.Errorf("expected 7 tokens, got %d", result.TotalTokens)
	}
	if result.DepartureRunway != "06" {
		t.Errorf("expected departure runway 06, got %q", result.DepartureRunway)
	}
	if result.ArrivalRunway != "07R" {
		t.Errorf("expected arrival runway 07R, got %q", result.ArrivalRunway)
	}
	if result.SID != "TES61X" || result.STAR != "ABBEY3A" {
		t.Errorf("expected sid TES61X / star ABBEY3A, got %s", spew.Sdump(result))
	}
	if !result.HasErrorLevel(route.Error) {
		t.Errorf("expected A470/V512 to surface as Error-level diagnostics, got %s", spew.Sdump(result.Errors))
	}
}

// Scenario 3: with no matching navdata at all, unresolved tokens surface
// as UnknownWaypoint Errors rather than aborting the parse.
func TestParseScenario3UnknownEverything(t *testing.T) {
	p := newTestParser(nil, nil)

	result := p.Parse("KSFO SID1 INVALID_WPT STAR1 KLAX", "KSFO", "KLAX", route.IFR)

	found := false
	for _, e := range result.Errors {
		if e.Kind == route.UnknownWaypoint && e.Level == route.Error {
			found = true
		}
	}
	if !found {
		t.Errorf("expected at least one UnknownWaypoint Error, got %s", spew.Sdump(result.Errors))
	}
}

func TestParseEmptyRoute(t *testing.T) {
	p := newTestParser(nil, nil)
	result := p.Parse("   ", "KSFO", "KLAX", route.IFR)
	if len(result.Errors) != 1 || result.Errors[0].Kind != route.RouteEmpty {
		t.Errorf("expected a single RouteEmpty error, got %s", spew.Sdump(result.Errors))
	}
}

func TestParseFiltersOriginDestinationAndDCT(t *testing.T) {
	waypoints := []route.Waypoint{wpt("KSFO", 37, -122), wpt("TESIG", 36, -120), wpt("KLAX", 33, -118)}
	p := newTestParser(waypoints, nil)

	result := p.Parse("KSFO DCT TESIG KLAX", "KSFO", "KLAX", route.IFR)
	for _, w := range result.Waypoints {
		if w.Identifier == "KSFO" || w.Identifier == "KLAX" || w.Identifier == "DCT" {
			t.Errorf("origin/destination/DCT should be filtered, got %s", spew.Sdump(result.Waypoints))
		}
	}
}
