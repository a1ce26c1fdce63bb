// Package loader implements the bulk, startup-time ingestion paths from
// §6/§9/§12: reading the airway text format and the intersection file
// into an airway.Network and navdata.Provider, and querying the read-only
// SQLite schemas for airports, navaids, runways, and airway segments.
// None of this runs on the parse path; it builds the stores a Parser is
// then constructed with.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/neoradar-project/route-handler-sub000/pkg/airway"
	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
	applog "github.com/neoradar-project/route-handler-sub000/pkg/log"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
	"github.com/neoradar-project/route-handler-sub000/pkg/util"
)

// openMaybeCompressed opens path for reading, transparently decompressing
// it with zstd when the name ends in ".zst" — the §11 "ship large navdata
// files compressed at rest" accommodation.
func openMaybeCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}

	zr, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening zstd stream %s: %w", path, err)
	}
	return zstdReadCloser{zr, f}, nil
}

type zstdReadCloser struct {
	zr *zstd.Decoder
	f  *os.File
}

func (z zstdReadCloser) Read(p []byte) (int, error) { return z.zr.Read(p) }
func (z zstdReadCloser) Close() error {
	z.zr.Close()
	return z.f.Close()
}

// LoadAirwayFile parses the §6 airway text format into net, one AddSegment
// call per neighbor field group on each line. Malformed lines are recorded
// against errs under a Push'd line-number context and otherwise skipped,
// so one bad line in a large file doesn't abort the whole load; the
// caller is still responsible for calling net.Finalize() once every file
// contributing to net has been loaded.
func LoadAirwayFile(path string, net *airway.Network, logger *applog.Logger, errs *util.ErrorLogger) error {
	f, err := openMaybeCompressed(path)
	if err != nil {
		return fmt.Errorf("opening airway file %s: %w", path, err)
	}
	defer f.Close()

	errs.Push("airway file " + path)
	defer errs.Pop()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	parsedLines := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}

		if err := parseAirwayLine(line, net); err != nil {
			errs.Push(fmt.Sprintf("line %d", lineNo))
			errs.Error(err)
			errs.Pop()
			logger.Warnf("airway file %s:%d: %v", path, lineNo, err)
			continue
		}
		parsedLines++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if parsedLines == 0 {
		return ErrEmptyDataset
	}
	return nil
}

func parseAirwayLine(line string, net *airway.Network) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 6 {
		return fmt.Errorf("expected at least 6 tab-separated fields, got %d", len(fields))
	}

	mainID := fields[0]
	mainLat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("main latitude %q: %w", fields[1], err)
	}
	mainLon, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("main longitude %q: %w", fields[2], err)
	}
	airwayName := fields[4]
	levelClass := fields[5]

	main := route.Waypoint{Kind: route.Fix, Identifier: mainID, Position: geo.Point{LatDeg: mainLat, LonDeg: mainLon}}

	rest := fields[6:]
	for len(rest) > 0 {
		if rest[0] == "N" {
			rest = rest[1:]
			continue
		}
		if len(rest) < 5 {
			return fmt.Errorf("truncated neighbor field group: %v", rest)
		}

		neighborID := rest[0]
		neighborLat, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return fmt.Errorf("neighbor latitude %q: %w", rest[1], err)
		}
		neighborLon, err := strconv.ParseFloat(rest[2], 64)
		if err != nil {
			return fmt.Errorf("neighbor longitude %q: %w", rest[2], err)
		}
		minLevel := parseMinimumLevel(rest[3])
		canTraverse := rest[4] == "Y"

		neighbor := route.Waypoint{Kind: route.Fix, Identifier: neighborID, Position: geo.Point{LatDeg: neighborLat, LonDeg: neighborLon}}
		net.AddSegment(airwayName, levelClass, main, neighbor, minLevel, canTraverse)

		rest = rest[5:]
	}

	return nil
}

// parseMinimumLevel decodes the §6 "NESTB means unknown/not-published"
// convention to 0, an always-passing minimum.
func parseMinimumLevel(s string) uint32 {
	if s == "NESTB" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}
