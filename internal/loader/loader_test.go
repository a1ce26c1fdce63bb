package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neoradar-project/route-handler-sub000/pkg/airway"
	"github.com/neoradar-project/route-handler-sub000/pkg/util"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestLoadIntersectionFileParsesTabSeparatedRecords(t *testing.T) {
	path := writeTemp(t, "intersections.txt", "; comment line\nTESIG\t30.0\t117.0\nDOTMI\t26.0\t115.0\n")

	var errs util.ErrorLogger
	waypoints, err := LoadIntersectionFile(path, nil, &errs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waypoints) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(waypoints))
	}
	if waypoints[0].Identifier != "TESIG" || waypoints[0].Position.LatDeg != 30.0 {
		t.Errorf("unexpected first waypoint: %+v", waypoints[0])
	}
}

func TestLoadIntersectionFileSkipsMalformedLines(t *testing.T) {
	path := writeTemp(t, "intersections.txt", "TESIG\t30.0\t117.0\nBADLINE\tnotanumber\t117.0\nDOTMI\t26.0\t115.0\n")

	var errs util.ErrorLogger
	waypoints, err := LoadIntersectionFile(path, nil, &errs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waypoints) != 2 {
		t.Fatalf("expected the malformed line to be skipped, got %d waypoints", len(waypoints))
	}
	if !errs.HaveErrors() {
		t.Errorf("expected the malformed line to be recorded against the error logger")
	}
}

func TestLoadIntersectionFileEmptyDataset(t *testing.T) {
	path := writeTemp(t, "intersections.txt", "; nothing but comments\n\n")

	var errs util.ErrorLogger
	_, err := LoadIntersectionFile(path, nil, &errs)
	if err != ErrEmptyDataset {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestLoadAirwayFileAddsSegmentsForEachNeighbor(t *testing.T) {
	// main_id lat lon ? name level neighbor1(id lat lon minlevel traversable) neighbor2(N = none)
	line := "SUMUM\t10.0\t100.0\t0\tY6\tB\tTOSVA\t11.0\t101.0\t10500\tY\tN\n"
	path := writeTemp(t, "airways.txt", line)

	net := airway.NewNetwork(nil)
	var errs util.ErrorLogger
	if err := LoadAirwayFile(path, net, nil, &errs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	net.Finalize()

	if !net.Exists("Y6") {
		t.Fatalf("expected airway Y6 to be loaded")
	}
	candidates := net.Candidates("Y6")
	if len(candidates) != 1 || len(candidates[0].Connections) != 1 {
		t.Fatalf("expected a single SUMUM->TOSVA connection, got %+v", candidates)
	}
	conn := candidates[0].Connections[0]
	if conn.MinimumLevel != 10500 || !conn.CanTraverse {
		t.Errorf("unexpected connection: %+v", conn)
	}
}

func TestLoadAirwayFileEmptyDataset(t *testing.T) {
	path := writeTemp(t, "airways.txt", "; comment only\n")

	net := airway.NewNetwork(nil)
	var errs util.ErrorLogger
	if err := LoadAirwayFile(path, net, nil, &errs); err != ErrEmptyDataset {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}
