package airway

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

func wpt(id string, lat, lon float64) route.Waypoint {
	return route.Waypoint{Kind: route.Fix, Identifier: id, Position: geo.Point{LatDeg: lat, LonDeg: lon}}
}

// buildY6 builds the bidirectional three-fix airway used by scenarios 4/5:
// SUMUM <-> TOSVA <-> IDESI, minimum level 10500 throughout.
func buildY6(net *Network) {
	sumum := wpt("SUMUM", 10, 100)
	tosva := wpt("TOSVA", 11, 101)
	idesi := wpt("IDESI", 12, 102)
	net.AddSegment("Y6", "B", sumum, tosva, 10500, true)
	net.AddSegment("Y6", "B", tosva, sumum, 10500, true)
	net.AddSegment("Y6", "B", tosva, idesi, 10500, true)
	net.AddSegment("Y6", "B", idesi, tosva, 10500, true)
}

func TestValidateSuccessAtSufficientLevel(t *testing.T) {
	net := NewNetwork(nil)
	buildY6(net)
	net.Finalize()

	result := net.Validate("SUMUM", "Y6", "IDESI", 11000, geo.Point{}, 0, "Y6")
	if !result.Success {
		t.Fatalf("expected success, got %s", spew.Sdump(result.Errors))
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %s", spew.Sdump(result.Segments))
	}
	if result.Segments[0].From.Identifier != "SUMUM" || result.Segments[0].To.Identifier != "TOSVA" {
		t.Errorf("unexpected first segment: %s", spew.Sdump(result.Segments[0]))
	}
	if result.Segments[1].From.Identifier != "TOSVA" || result.Segments[1].To.Identifier != "IDESI" {
		t.Errorf("unexpected second segment: %s", spew.Sdump(result.Segments[1]))
	}
	for _, seg := range result.Segments {
		if seg.MinimumLevel != 10500 {
			t.Errorf("expected minimum level 10500, got %d", seg.MinimumLevel)
		}
	}
}

func TestValidateInsufficientFlightLevel(t *testing.T) {
	net := NewNetwork(nil)
	buildY6(net)
	net.Finalize()

	result := net.Validate("SUMUM", "Y6", "IDESI", 10000, geo.Point{}, 0, "Y6")
	if result.Success {
		t.Fatalf("expected failure at FL100, got success")
	}
	if len(result.Errors) == 0 || result.Errors[0].Kind != route.InsufficientFlightLevel {
		t.Fatalf("expected InsufficientFlightLevel first, got %s", spew.Sdump(result.Errors))
	}
	if result.Errors[0].Level != route.Error {
		t.Errorf("expected promoted error to be Error severity, got %v", result.Errors[0].Level)
	}
}

func TestValidateInvalidDirection(t *testing.T) {
	net := NewNetwork(nil)
	sumum := wpt("SUMUM", 10, 100)
	tosva := wpt("TOSVA", 11, 101)
	idesi := wpt("IDESI", 12, 102)
	// Directional the other way: only IDESI -> SUMUM is traversable.
	net.AddSegment("Y6", "B", idesi, tosva, 10500, true)
	net.AddSegment("Y6", "B", tosva, sumum, 10500, true)
	net.Finalize()

	result := net.Validate("IDESI", "Y6", "SUMUM", 99999, geo.Point{}, 0, "Y6")
	if !result.Success {
		t.Fatalf("IDESI->SUMUM should succeed along the traversable direction, got %s", spew.Sdump(result.Errors))
	}

	failing := net.Validate("SUMUM", "Y6", "IDESI", 99999, geo.Point{}, 0, "Y6")
	if failing.Success {
		t.Fatalf("SUMUM->IDESI should fail: airway only traversable the other way")
	}
	if failing.Errors[0].Kind != route.InvalidAirwayDirection {
		t.Errorf("expected InvalidAirwayDirection, got %s", spew.Sdump(failing.Errors))
	}
}

func TestValidateUnknownAirway(t *testing.T) {
	net := NewNetwork(nil)
	result := net.Validate("SUMUM", "Q9", "IDESI", 99999, geo.Point{}, 0, "Q9")
	if result.Success || result.Errors[0].Kind != route.UnknownAirway {
		t.Errorf("expected UnknownAirway, got %s", spew.Sdump(result))
	}
}

func TestValidateFixNotFound(t *testing.T) {
	net := NewNetwork(nil)
	buildY6(net)
	net.Finalize()

	result := net.Validate("SUMUM", "Y6", "NOTHERE", 99999, geo.Point{}, 0, "Y6")
	if result.Success || result.Errors[0].Kind != route.AirwayFixNotFound {
		t.Errorf("expected AirwayFixNotFound, got %s", spew.Sdump(result))
	}
}

func TestRequireFinalized(t *testing.T) {
	net := NewNetwork(nil)
	buildY6(net)

	if err := net.RequireFinalized(); err != ErrNotFinalized {
		t.Errorf("expected ErrNotFinalized before Finalize, got %v", err)
	}
	net.Finalize()
	if err := net.RequireFinalized(); err != nil {
		t.Errorf("expected no error after Finalize, got %v", err)
	}
}

func TestAddSegmentDedupOverwrite(t *testing.T) {
	net := NewNetwork(nil)
	a := wpt("AAAAA", 1, 1)
	b := wpt("BBBBB", 2, 2)
	net.AddSegment("V1", "L", a, b, 5000, true)
	net.AddSegment("V1", "L", a, b, 9000, false)

	aw := net.Candidates("V1")[0]
	if len(aw.Connections) != 1 {
		t.Fatalf("expected a single deduped connection, got %s", spew.Sdump(aw.Connections))
	}
	if aw.Connections[0].MinimumLevel != 9000 || aw.Connections[0].CanTraverse {
		t.Errorf("expected the later insertion to win, got %s", spew.Sdump(aw.Connections[0]))
	}
}
