package procedure

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

func TestAreRelatedTolerance(t *testing.T) {
	tests := []struct {
		a, b    string
		related bool
	}{
		{"SNTNA2", "SNTNA2", true},
		{"ABBEY3A", "ABBE3A", true},   // one char dropped from the end of the prefix
		{"ABBEY3A", "ABBFY3A", true},  // one char substituted
		{"ABBEY3A", "ABBEY3B", false}, // suffix must match exactly
		{"ABBEY3A", "ZEBRA3A", false},
	}
	for _, tt := range tests {
		if got := AreRelated(tt.a, tt.b); got != tt.related {
			t.Errorf("AreRelated(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.related)
		}
	}
}

func TestExtractComponents(t *testing.T) {
	prefix, suffix := ExtractComponents("SNTNA2")
	if prefix != "SNTNA" || suffix != "2" {
		t.Errorf("got (%q, %q)", prefix, suffix)
	}
}

func TestFindRunway(t *testing.T) {
	if rw, ok := FindRunway("ABBEY3A/07R"); !ok || rw != "07R" {
		t.Errorf("got (%q, %v)", rw, ok)
	}
	if _, ok := FindRunway("ABBEY3A/X"); ok {
		t.Error("single-character runway suffix should not match")
	}
	if _, ok := FindRunway("NOSLASH"); ok {
		t.Error("no slash should not match")
	}
}

func TestStoreFindStrictVsFuzzy(t *testing.T) {
	s := NewStore()
	s.Add(route.Procedure{
		Name: "SNTNA2", AirportICAO: "KSFO", Runway: "01L", Type: route.SID,
		Waypoints: []route.Waypoint{{Identifier: "SNTNA", Kind: route.Fix}},
	})

	found := s.Find("SNTNA2/01L", "KSFO", route.SID, 0)
	if !found.HasExtracted || found.Extracted.Runway != "01L" {
		t.Errorf("unexpected result: %s", spew.Sdump(found))
	}

	fuzzy := s.Find("SNTNA2/01R", "KSFO", route.SID, 0)
	if !fuzzy.HasExtracted {
		t.Fatalf("expected fuzzy runway fallback, got %s", spew.Sdump(fuzzy))
	}
	if len(fuzzy.Errors) != 1 || fuzzy.Errors[0].Kind != route.ProcedureRunwayMismatch {
		t.Errorf("expected ProcedureRunwayMismatch, got %s", spew.Sdump(fuzzy.Errors))
	}

	unknown := s.Find("ZEBRA1/01L", "KSFO", route.SID, 0)
	if unknown.HasExtracted {
		t.Errorf("expected no match, got %s", spew.Sdump(unknown))
	}
	if len(unknown.Errors) != 1 || unknown.Errors[0].Kind != route.UnknownProcedure {
		t.Errorf("expected UnknownProcedure, got %s", spew.Sdump(unknown.Errors))
	}
}

func TestProceduresForAirportOrder(t *testing.T) {
	s := NewStore()
	s.Add(route.Procedure{Name: "A1", AirportICAO: "KSFO", Type: route.SID, Waypoints: []route.Waypoint{{Identifier: "X"}}})
	s.Add(route.Procedure{Name: "A2", AirportICAO: "KSFO", Type: route.SID, Waypoints: []route.Waypoint{{Identifier: "X"}}})

	procs := s.ProceduresForAirport("KSFO")
	if len(procs) != 2 || procs[0].Name != "A1" || procs[1].Name != "A2" {
		t.Errorf("unexpected order: %s", spew.Sdump(procs))
	}
}
