package loader

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/neoradar-project/route-handler-sub000/pkg/airway"
	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

// openReadOnly opens the SQLite file at path for reading only; every
// loader in this file is a one-shot bulk read at startup, never a writer.
func openReadOnly(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return db, nil
}

// LoadAirportsDB reads the §6 airports schema into Airport waypoints.
func LoadAirportsDB(ctx context.Context, path string) ([]route.Waypoint, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT ident, latitude_deg, longitude_deg FROM airports`)
	if err != nil {
		return nil, fmt.Errorf("querying airports: %w", err)
	}
	defer rows.Close()

	var out []route.Waypoint
	for rows.Next() {
		var ident string
		var lat, lon float64
		if err := rows.Scan(&ident, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scanning airport row: %w", err)
		}
		out = append(out, route.Waypoint{Kind: route.Airport, Identifier: ident, Position: geo.Point{LatDeg: lat, LonDeg: lon}})
	}
	return out, rows.Err()
}

// navaidKind maps the FAA-style navaid type string to a WaypointKind.
func navaidKind(t string) route.WaypointKind {
	switch t {
	case "VOR", "VOR-DME", "VORTAC":
		return route.VOR
	case "DME":
		return route.DME
	case "TACAN":
		return route.TACAN
	case "NDB":
		return route.NDB
	default:
		return route.VOR
	}
}

// LoadNavaidsDB reads the §6 navaids schema into VOR/DME/TACAN/NDB
// waypoints, carrying the published frequency when present.
func LoadNavaidsDB(ctx context.Context, path string) ([]route.Waypoint, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT ident, type, frequency_khz, latitude_deg, longitude_deg FROM navaids`)
	if err != nil {
		return nil, fmt.Errorf("querying navaids: %w", err)
	}
	defer rows.Close()

	var out []route.Waypoint
	for rows.Next() {
		var ident, typ string
		var freqKHz sql.NullInt64
		var lat, lon float64
		if err := rows.Scan(&ident, &typ, &freqKHz, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scanning navaid row: %w", err)
		}
		w := route.Waypoint{Kind: navaidKind(typ), Identifier: ident, Position: geo.Point{LatDeg: lat, LonDeg: lon}}
		if freqKHz.Valid {
			w.HasFrequency = true
			w.FrequencyHz = uint64(freqKHz.Int64) * 1000
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// RunwayEnd is one physical end of a runway, carrying the identifier the
// airport configurator matches active runways against.
type RunwayEnd struct {
	AirportIdent string
	Ident        string
}

// LoadRunwaysDB reads the §6 runways schema and returns both physical
// ends of every runway, for the airport configurator to seed its active
// set from (a deployment typically filters this down to whichever runways
// are actually in use before calling SetActiveRunways).
func LoadRunwaysDB(ctx context.Context, path string) ([]RunwayEnd, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT airport_ident, le_ident, he_ident FROM runways`)
	if err != nil {
		return nil, fmt.Errorf("querying runways: %w", err)
	}
	defer rows.Close()

	var out []RunwayEnd
	for rows.Next() {
		var airportIdent, leIdent, heIdent string
		if err := rows.Scan(&airportIdent, &leIdent, &heIdent); err != nil {
			return nil, fmt.Errorf("scanning runway row: %w", err)
		}
		if leIdent != "" {
			out = append(out, RunwayEnd{AirportIdent: airportIdent, Ident: leIdent})
		}
		if heIdent != "" {
			out = append(out, RunwayEnd{AirportIdent: airportIdent, Ident: heIdent})
		}
	}
	return out, rows.Err()
}

// LoadAirwayDB reads the §6 airway-database schema (waypoints, airways,
// direct_segments) into net, the SQL-backed alternative to LoadAirwayFile
// for deployments that ship their navdata in a single database file
// instead of the text format.
func LoadAirwayDB(ctx context.Context, path string, net *airway.Network) error {
	db, err := openReadOnly(path)
	if err != nil {
		return err
	}
	defer db.Close()

	fixes := make(map[string]geo.Point)
	wptRows, err := db.QueryContext(ctx, `SELECT identifier, latitude, longitude FROM waypoints`)
	if err != nil {
		return fmt.Errorf("querying waypoints: %w", err)
	}
	for wptRows.Next() {
		var ident string
		var lat, lon float64
		if err := wptRows.Scan(&ident, &lat, &lon); err != nil {
			wptRows.Close()
			return fmt.Errorf("scanning waypoint row: %w", err)
		}
		fixes[ident] = geo.Point{LatDeg: lat, LonDeg: lon}
	}
	if err := wptRows.Err(); err != nil {
		wptRows.Close()
		return err
	}
	wptRows.Close()

	levelClass := make(map[string]string)
	awyRows, err := db.QueryContext(ctx, `SELECT name, level_class FROM airways`)
	if err == nil {
		for awyRows.Next() {
			var name, level string
			if err := awyRows.Scan(&name, &level); err == nil {
				levelClass[name] = level
			}
		}
		awyRows.Close()
	}

	segRows, err := db.QueryContext(ctx, `SELECT airway_name, from_identifier, to_identifier, minimum_level, can_traverse FROM direct_segments`)
	if err != nil {
		return fmt.Errorf("querying direct_segments: %w", err)
	}
	defer segRows.Close()

	for segRows.Next() {
		var airwayName, fromID, toID string
		var minLevel int64
		var canTraverse bool
		if err := segRows.Scan(&airwayName, &fromID, &toID, &minLevel, &canTraverse); err != nil {
			return fmt.Errorf("scanning direct_segment row: %w", err)
		}

		from := route.Waypoint{Kind: route.Fix, Identifier: fromID, Position: fixes[fromID]}
		to := route.Waypoint{Kind: route.Fix, Identifier: toID, Position: fixes[toID]}
		net.AddSegment(airwayName, levelClass[airwayName], from, to, uint32(minLevel), canTraverse)
	}

	return segRows.Err()
}
