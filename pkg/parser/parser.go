// Package parser implements the route state machine from §4.H: the
// driver that turns a raw filed route string into a route.ParsedRoute by
// classifying each token in a fixed order of attempts, consulting the
// navdata registry, procedure store, and airway network as collaborators.
package parser

import (
	"strings"

	"github.com/neoradar-project/route-handler-sub000/pkg/airway"
	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
	applog "github.com/neoradar-project/route-handler-sub000/pkg/log"
	"github.com/neoradar-project/route-handler-sub000/pkg/navdata"
	"github.com/neoradar-project/route-handler-sub000/pkg/procedure"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
	"github.com/neoradar-project/route-handler-sub000/pkg/token"
)

// veryPermissiveLevel stands in for "no altitude restriction" when
// validating an airway traversal encountered mid-route with no filed
// flight level attached, per §4.H step 4.
const veryPermissiveLevel = 99999

// Parser holds the read-only collaborators a parse consults. It owns
// none of them; construction (loading navdata, building the airway
// graph, ingesting procedures) happens elsewhere and the results are
// injected here, per §13's "separate construction from parsing" note.
type Parser struct {
	Navdata    *navdata.Registry
	Procedures *procedure.Store
	Airways    *airway.Network
	Logger     *applog.Logger
}

// New returns a Parser over the given collaborators.
func New(nd *navdata.Registry, procs *procedure.Store, aws *airway.Network, logger *applog.Logger) *Parser {
	return &Parser{Navdata: nd, Procedures: procs, Airways: aws, Logger: logger}
}

// state is the mutable cursor the classification steps advance.
type state struct {
	tokens      []string
	index       int
	prevWpt     route.Waypoint
	havePrevWpt bool
	flightRule  route.FlightRule
	result      *route.ParsedRoute
}

// Parse implements the §6 public parse API. It never returns an error:
// every failure mode is recorded in the returned ParsedRoute's Errors.
func (p *Parser) Parse(raw, origin, destination string, defaultRule route.FlightRule) route.ParsedRoute {
	result := &route.ParsedRoute{RawRoute: raw}

	normalized := token.Normalize(raw)
	if normalized == "" {
		result.AddError(route.ParsingError{Kind: route.RouteEmpty, Message: "route is empty", Level: route.Error})
		return *result
	}

	var allTokens []string
	for _, t := range token.Tokenize(normalized) {
		if token.IsFiltered(t, origin, destination) {
			continue
		}
		allTokens = append(allTokens, t)
	}
	result.TotalTokens = len(allTokens)

	st := &state{tokens: allTokens, flightRule: defaultRule, result: result}

	if originWpt, ok := p.Navdata.FindClosest(origin, geo.Point{}); ok {
		st.prevWpt = originWpt
		st.havePrevWpt = true
	}

	for st.index < len(st.tokens) {
		p.classifyOne(st, origin, destination)
	}

	return *result
}

// classifyOne runs the §4.H ordered classification attempts against the
// current token, consuming exactly one token (or two, for the airway
// look-ahead case) on success.
func (p *Parser) classifyOne(st *state, origin, destination string) {
	tok := st.tokens[st.index]
	last := len(st.tokens) - 1

	if token.IsFlightRule(tok) {
		if tok == "VFR" {
			st.flightRule = route.VFR
		} else {
			st.flightRule = route.IFR
		}
		st.index++
		return
	}

	if st.index == 0 {
		if pas, ok := token.ParsePlannedAltitudeSpeed(tok); ok {
			st.result.HasFiledPlanned = true
			st.result.FiledPlanned = decodePlannedAltitudeSpeed(pas)
			st.index++
			return
		}
	}

	// A bare procedure name with no runway suffix ("SNTNA2") is just as
	// valid as "SNTNA2/06"; the strict attempt's HasExtracted/anchor-ICAO
	// guard (in tryProcedure) is what keeps an ordinary first/last
	// waypoint from being misread as a procedure, so the gate here only
	// needs the token position, not a literal '/'.
	if st.index == 0 || st.index == last {
		anchor := destination
		isDeparture := st.index == 0
		if isDeparture {
			anchor = origin
		}
		if p.tryProcedure(st, tok, anchor, isDeparture, true) {
			return
		}
	}

	if st.havePrevWpt && st.index < last {
		next := st.tokens[st.index+1]
		if p.Airways.Exists(tok) && !strings.Contains(tok, "/") && !strings.Contains(next, "/") {
			if p.tryAirway(st, tok, next) {
				return
			}
		}
	}

	if p.tryWaypoint(st, tok) {
		return
	}

	if ll, ok := token.ParseLatLon(tok); ok {
		if !ll.Valid() {
			st.result.AddError(route.ParsingError{
				Kind: route.InvalidData, Message: "lat/lon out of range: " + tok,
				TokenIndex: st.index, Token: tok, Level: route.Error,
			})
			st.index++
			return
		}
		lat, lon := ll.DecimalDegrees()
		wpt := route.Waypoint{Kind: route.LatLon, Identifier: tok, Position: geo.Point{LatDeg: lat, LonDeg: lon}}
		appendWaypoint(st, wpt)
		st.index++
		return
	}

	if st.index == 0 || st.index == last {
		anchor := destination
		isDeparture := st.index == 0
		if isDeparture {
			anchor = origin
		}
		if p.tryProcedure(st, tok, anchor, isDeparture, false) {
			return
		}
	}

	st.result.AddError(route.ParsingError{
		Kind: route.UnknownWaypoint, Message: "unrecognized token: " + tok,
		TokenIndex: st.index, Token: tok, Level: route.Error,
	})
	st.index++
}

// tryProcedure implements §4.H steps 3 and 7: strict requires the match
// to resolve to a real dataset procedure or the anchor ICAO itself;
// non-strict accepts a name-only match and records UnknownProcedure.
func (p *Parser) tryProcedure(st *state, tok, anchorICAO string, isDeparture, strict bool) bool {
	procType := route.STAR
	if isDeparture {
		procType = route.SID
	}

	found := p.Procedures.Find(tok, anchorICAO, procType, st.index)
	if !found.HasProcedureName {
		return false
	}
	if strict && !found.HasExtracted && found.ProcedureName != anchorICAO {
		return false
	}

	if isDeparture {
		st.result.SID = found.ProcedureName
		st.result.HasSID = true
		if found.HasRunway {
			st.result.DepartureRunway = found.Runway
		}
	} else {
		st.result.STAR = found.ProcedureName
		st.result.HasSTAR = true
		if found.HasRunway {
			st.result.ArrivalRunway = found.Runway
		}
	}

	if !strict {
		for _, e := range found.Errors {
			st.result.AddError(e)
		}
	}

	if found.HasExtracted {
		for _, w := range found.Extracted.Waypoints {
			appendWaypoint(st, w)
		}
	}

	st.index++
	return true
}

// tryAirway implements §4.H step 4: resolve the terminator token to a
// waypoint, validate the traversal with an unrestricted flight level, and
// splice the resulting path in, advancing past both tokens.
func (p *Parser) tryAirway(st *state, airwayTok, terminatorTok string) bool {
	terminator, ok := p.Navdata.FindClosestTo(terminatorTok, &st.prevWpt)
	if !ok {
		return false
	}

	result := p.Airways.Validate(st.prevWpt.Identifier, airwayTok, terminator.Identifier, veryPermissiveLevel, st.prevWpt.Position, st.index, airwayTok)
	if !result.Success {
		for _, e := range result.Errors {
			st.result.AddError(e)
		}
		return false
	}

	for _, seg := range result.Segments {
		rw := route.RouteWaypoint{Waypoint: seg.To, FlightRule: st.flightRule}
		st.result.Waypoints = append(st.result.Waypoints, rw)
		st.result.Segments = append(st.result.Segments, route.RouteSegment{
			From:         route.RouteWaypoint{Waypoint: seg.From, FlightRule: st.flightRule},
			To:           rw,
			AirwayName:   airwayTok,
			MinimumLevel: seg.MinimumLevel,
		})
	}

	st.prevWpt = terminator
	st.havePrevWpt = true
	st.index += 2
	return true
}

// tryWaypoint implements §4.H step 5: split on '/', resolve the left part
// via the navdata registry using the rolling reference point, and apply
// any planned altitude/speed from the right part.
func (p *Parser) tryWaypoint(st *state, tok string) bool {
	identifier := tok
	var planned route.PlannedAltitudeSpeed
	if left, right, ok := token.SplitProcedureRunway(tok); ok {
		if pas, pasOK := token.ParsePlannedAltitudeSpeed(right); pasOK {
			identifier = left
			planned = decodePlannedAltitudeSpeed(pas)
		}
	}

	ref := st.prevWpt
	wpt, ok := p.Navdata.FindClosestTo(identifier, &ref)
	if !ok {
		return false
	}

	rw := route.RouteWaypoint{Waypoint: wpt, FlightRule: st.flightRule, Planned: planned}
	st.result.Waypoints = append(st.result.Waypoints, rw)
	if st.havePrevWpt {
		st.result.Segments = append(st.result.Segments, route.RouteSegment{
			From:         route.RouteWaypoint{Waypoint: st.prevWpt, FlightRule: st.flightRule},
			To:           rw,
			AirwayName:   route.DirectAirwayName,
		})
	}
	st.prevWpt = wpt
	st.havePrevWpt = true
	st.index++
	return true
}

func appendWaypoint(st *state, w route.Waypoint) {
	rw := route.RouteWaypoint{Waypoint: w, FlightRule: st.flightRule}
	st.result.Waypoints = append(st.result.Waypoints, rw)
	if st.havePrevWpt {
		st.result.Segments = append(st.result.Segments, route.RouteSegment{
			From:       route.RouteWaypoint{Waypoint: st.prevWpt, FlightRule: st.flightRule},
			To:         rw,
			AirwayName: route.DirectAirwayName,
		})
	}
	st.prevWpt = w
	st.havePrevWpt = true
}

func decodePlannedAltitudeSpeed(pas token.PlannedAltitudeSpeed) route.PlannedAltitudeSpeed {
	var out route.PlannedAltitudeSpeed

	if pas.HasSpeed {
		out.HasSpeed = true
		out.SpeedVal = pas.SpeedValue
		switch pas.SpeedUnit {
		case "N":
			out.SpeedUnit = route.Knots
		case "K":
			out.SpeedUnit = route.KMH
		case "M":
			out.SpeedUnit = route.Mach
		}
	}

	if pas.HasAltitude {
		out.HasAltitude = true
		switch pas.AltitudeUnit {
		case "F", "A":
			out.AltitudeUnit = route.Feet
			out.AltitudeVal = pas.AltitudeValue * 100
		case "S", "M":
			out.AltitudeUnit = route.Meters
			out.AltitudeVal = pas.AltitudeValue * 10
		}
	}

	return out
}
