package loader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
	applog "github.com/neoradar-project/route-handler-sub000/pkg/log"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
	"github.com/neoradar-project/route-handler-sub000/pkg/util"
)

// LoadIntersectionFile reads the §6 tab-separated intersection file
// (identifier, latitude, longitude; ';' comments) and returns every
// successfully parsed waypoint. A malformed line is recorded against errs
// and skipped rather than aborting the read, matching LoadAirwayFile's
// per-line fault tolerance.
func LoadIntersectionFile(path string, logger *applog.Logger, errs *util.ErrorLogger) ([]route.Waypoint, error) {
	f, err := openMaybeCompressed(path)
	if err != nil {
		return nil, fmt.Errorf("opening intersection file %s: %w", path, err)
	}
	defer f.Close()

	errs.Push("intersection file " + path)
	defer errs.Pop()

	var waypoints []route.Waypoint
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			errs.ErrorString("line %d: expected 3 tab-separated fields, got %d", lineNo, len(fields))
			logger.Warnf("intersection file %s:%d: expected 3 fields, got %d", path, lineNo, len(fields))
			continue
		}

		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			errs.ErrorString("line %d: latitude %q: %v", lineNo, fields[1], err)
			continue
		}
		lon, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			errs.ErrorString("line %d: longitude %q: %v", lineNo, fields[2], err)
			continue
		}

		waypoints = append(waypoints, route.Waypoint{
			Kind:       route.Fix,
			Identifier: fields[0],
			Position:   geo.Point{LatDeg: lat, LonDeg: lon},
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(waypoints) == 0 {
		return nil, ErrEmptyDataset
	}
	return waypoints, nil
}
