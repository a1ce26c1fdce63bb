// Package token holds the pure shape predicates the route state machine
// uses to decide what a single whitespace-delimited token looks like,
// before any of that shape is confirmed against navdata. None of these
// functions touch the navdata registry, the procedure store, or the
// airway graph; they only look at the token's characters.
package token

import (
	"regexp"
	"strconv"
	"strings"
)

// Exact regexes the classifier is grounded on; preserved verbatim from the
// reference patterns rather than re-derived, since the digit counts and
// group layout are the part most likely to be gotten subtly wrong by hand.
var (
	plannedAltitudeSpeedRE = regexp.MustCompile(`^((M)(\d{3})|([NK])(\d{4}))(([FA])(\d{3})|([SM])(\d{4}))$`)
	latLonRE               = regexp.MustCompile(`^(\d{2})(\d{0,2})([NS])(\d{3})(\d{0,2})([EW])$`)
	fixRE                  = regexp.MustCompile(`^[A-Z]{5}$`)
	vorRE                  = regexp.MustCompile(`^[A-Z]{3}$`)
	ndbRE                  = regexp.MustCompile(`^[A-Z]{1,3}$`)
)

// IsFlightRule reports whether token is exactly an IFR or VFR switch.
func IsFlightRule(tok string) bool {
	return tok == "IFR" || tok == "VFR"
}

// PlannedAltitudeSpeed is the decoded form of a RoutePlannedAltitudeAndSpeed
// match: WAYPOINT/N0490F370-style tokens, or the standalone first-token form.
type PlannedAltitudeSpeed struct {
	HasSpeed     bool
	SpeedValue   int
	SpeedUnit    string // "N" knots, "K" km/h, "M" mach (hundredths)
	HasAltitude  bool
	AltitudeValue int
	AltitudeUnit string // "F" feet (FL), "A" feet (altitude), "S"/"M" meters
}

// ParsePlannedAltitudeSpeed matches tok against the planned altitude/speed
// shape and decodes it. ok is false if tok doesn't match the shape at all.
func ParsePlannedAltitudeSpeed(tok string) (PlannedAltitudeSpeed, bool) {
	m := plannedAltitudeSpeedRE.FindStringSubmatch(tok)
	if m == nil {
		return PlannedAltitudeSpeed{}, false
	}

	var out PlannedAltitudeSpeed

	speedUnit, speedDigits := m[2], m[3]
	if speedUnit == "" {
		speedUnit, speedDigits = m[4], m[5]
	}
	if speedUnit != "" {
		v, err := strconv.Atoi(speedDigits)
		if err != nil {
			return PlannedAltitudeSpeed{}, false
		}
		out.HasSpeed = true
		out.SpeedUnit = speedUnit
		out.SpeedValue = v
	}

	altUnit, altDigits := m[7], m[8]
	if altUnit == "" {
		altUnit, altDigits = m[9], m[10]
	}
	if altUnit != "" {
		v, err := strconv.Atoi(altDigits)
		if err != nil {
			return PlannedAltitudeSpeed{}, false
		}
		out.HasAltitude = true
		out.AltitudeUnit = altUnit
		out.AltitudeValue = v
	}

	return out, true
}

// LatLon is the decoded form of a RouteLatLon match, still in the degrees
// + optional minutes representation. Range checking (Valid) and the
// conversion to signed decimal degrees (DecimalDegrees) are separate
// steps the caller invokes, so the >90/>180 rejection sees the raw degree
// count rather than the already-signed decimal value.
type LatLon struct {
	LatDeg     int
	LatMin     int
	LatCardinal string
	LonDeg     int
	LonMin     int
	LonCardinal string
}

// ParseLatLon matches tok against the lat/lon literal shape. ok is false if
// tok doesn't match the shape; it does NOT validate degree ranges, since
// that's a separate InvalidData condition the caller raises explicitly.
func ParseLatLon(tok string) (LatLon, bool) {
	m := latLonRE.FindStringSubmatch(tok)
	if m == nil {
		return LatLon{}, false
	}

	latDeg, _ := strconv.Atoi(m[1])
	latMin := 0
	if m[2] != "" {
		latMin, _ = strconv.Atoi(m[2])
	}
	lonDeg, _ := strconv.Atoi(m[4])
	lonMin := 0
	if m[5] != "" {
		lonMin, _ = strconv.Atoi(m[5])
	}

	return LatLon{
		LatDeg:      latDeg,
		LatMin:      latMin,
		LatCardinal: m[3],
		LonDeg:      lonDeg,
		LonMin:      lonMin,
		LonCardinal: m[6],
	}, true
}

// Valid reports whether the decoded degree counts are in legal range. Over
// 90 degrees latitude or 180 degrees longitude is rejected regardless of
// minutes.
func (l LatLon) Valid() bool {
	return l.LatDeg <= 90 && l.LonDeg <= 180
}

// DecimalDegrees converts l to signed decimal degrees.
func (l LatLon) DecimalDegrees() (lat, lon float64) {
	lat = float64(l.LatDeg) + float64(l.LatMin)/60.0
	if l.LatCardinal == "S" {
		lat = -lat
	}
	lon = float64(l.LonDeg) + float64(l.LonMin)/60.0
	if l.LonCardinal == "W" {
		lon = -lon
	}
	return lat, lon
}

// SplitProcedureRunway splits a PROC/RW token on its slash. ok is false if
// there's no slash at all. The runway part is returned exactly as found,
// including whatever length it is; callers decide whether a non-2/3
// character runway is acceptable (see FindRunway in pkg/procedure, which
// applies that length check because it's what distinguishes a real runway
// suffix from noise after the slash).
func SplitProcedureRunway(tok string) (proc, runway string, ok bool) {
	i := strings.IndexByte(tok, '/')
	if i < 0 {
		return "", "", false
	}
	return tok[:i], tok[i+1:], true
}

// IsAirwayNameShape reports whether tok has the lexical shape of an airway
// identifier: starts with a letter, remainder alphanumeric. This is
// advisory only — the state machine in pkg/parser still requires a hit in
// the airway registry before treating a token as an airway, since many
// waypoint identifiers share this exact shape.
func IsAirwayNameShape(tok string) bool {
	if tok == "" {
		return false
	}
	c := tok[0]
	if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
		return false
	}
	for i := 1; i < len(tok); i++ {
		c := tok[i]
		alnum := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
		if !alnum {
			return false
		}
	}
	return true
}

// IsFixShape, IsVORShape, IsNDBShape are advisory identifier-length
// classifiers per §4.G; final identity always comes from a navdata lookup,
// never from shape alone.
func IsFixShape(tok string) bool { return fixRE.MatchString(tok) }
func IsVORShape(tok string) bool { return vorRE.MatchString(tok) }
func IsNDBShape(tok string) bool { return ndbRE.MatchString(tok) }

// filteredTokens are literals the tokenizer drops outright regardless of
// position: "direct" markers and routing dots carry no navigational
// content of their own.
var filteredTokens = map[string]bool{
	"DCT": true,
	".":   true,
	"..":  true,
}

// IsFiltered reports whether tok should be dropped before classification:
// empty, a DCT/./.. literal, or equal to one of the route's anchor ICAOs.
func IsFiltered(tok, origin, destination string) bool {
	if tok == "" {
		return true
	}
	if filteredTokens[tok] {
		return true
	}
	return tok == origin || tok == destination
}

// Normalize strips stray ':' separators some filed plans include and
// collapses runs of whitespace, mirroring the normalization step the
// tokenizer applies before splitting on spaces.
func Normalize(route string) string {
	route = strings.ReplaceAll(route, ":", "")
	fields := strings.Fields(route)
	return strings.Join(fields, " ")
}

// Tokenize splits an already-normalized route string on whitespace.
func Tokenize(route string) []string {
	if route == "" {
		return nil
	}
	return strings.Split(route, " ")
}
