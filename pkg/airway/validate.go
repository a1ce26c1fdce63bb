package airway

import (
	"fmt"
	"math"
	"sort"

	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

// SegmentInfo is one directed hop of a resolved airway traversal.
type SegmentInfo struct {
	From         route.Waypoint
	To           route.Waypoint
	MinimumLevel uint32
	CanTraverse  bool
}

// ValidateResult is the outcome of Validate: either a successful
// traversal with its segments, or a failing one whose Errors[0] is the
// most informative diagnostic gathered while trying every candidate.
type ValidateResult struct {
	Success  bool
	Segments []SegmentInfo
	Errors   []route.ParsingError
}

// Validate implements §4.F: find the airway named airwayName containing
// both startFix and endFix, preferring the candidate (among possible
// regional namesakes) closest to nearPoint, and BFS a traversable path
// from startFix to endFix whose maximum required level is within
// flightLevel.
func (n *Network) Validate(startFix, airwayName, endFix string, flightLevel uint32, nearPoint geo.Point, tokenIndex int, token string) ValidateResult {
	all := n.byName[airwayName]
	if len(all) == 0 {
		return ValidateResult{Errors: []route.ParsingError{{
			Kind:       route.UnknownAirway,
			Message:    fmt.Sprintf("unknown airway %s", airwayName),
			TokenIndex: tokenIndex,
			Token:      token,
			Level:      route.Error,
		}}}
	}

	var withBoth []*Airway
	for _, a := range all {
		if a.HasFix(startFix) && a.HasFix(endFix) {
			withBoth = append(withBoth, a)
		}
	}
	if len(withBoth) == 0 {
		return ValidateResult{Errors: []route.ParsingError{{
			Kind:       route.AirwayFixNotFound,
			Message:    fmt.Sprintf("airway %s does not connect %s and %s", airwayName, startFix, endFix),
			TokenIndex: tokenIndex,
			Token:      token,
			Level:      route.Error,
		}}}
	}

	ordered := orderCandidates(withBoth, nearPoint)

	var diagnostics []route.ParsingError
	for _, a := range ordered {
		segments, found := bfsPath(a, a.fixIndices[startFix], a.fixIndices[endFix])
		if !found {
			diagnostics = append(diagnostics, route.ParsingError{
				Kind:       route.InvalidAirwayDirection,
				Message:    fmt.Sprintf("cannot traverse airway %s from %s to %s", airwayName, startFix, endFix),
				TokenIndex: tokenIndex,
				Token:      token,
				Level:      route.Info,
			})
			continue
		}

		var maxRequired uint32
		for _, s := range segments {
			if s.MinimumLevel > maxRequired {
				maxRequired = s.MinimumLevel
			}
		}
		if maxRequired <= flightLevel {
			return ValidateResult{Success: true, Segments: segments}
		}

		diagnostics = append(diagnostics, route.ParsingError{
			Kind:       route.InsufficientFlightLevel,
			Message:    fmt.Sprintf("airway %s requires minimum level %d", airwayName, maxRequired),
			TokenIndex: tokenIndex,
			Token:      token,
			Level:      route.Info,
		})
	}

	return ValidateResult{Errors: promote(diagnostics, tokenIndex, token, airwayName)}
}

// orderCandidates sorts candidates by distance from any member fix to
// nearPoint ascending, then groups by level class while preserving the
// distance order within each group — the group containing the globally
// closest candidate comes first, so a mis-classified filed level still
// gets a chance against the other class.
func orderCandidates(candidates []*Airway, nearPoint geo.Point) []*Airway {
	type scored struct {
		aw   *Airway
		dist float64
	}
	scoredCandidates := make([]scored, len(candidates))
	for i, a := range candidates {
		scoredCandidates[i] = scored{a, minDistance(a, nearPoint)}
	}
	sort.SliceStable(scoredCandidates, func(i, j int) bool {
		return scoredCandidates[i].dist < scoredCandidates[j].dist
	})

	groups := make(map[Level][]*Airway)
	var groupOrder []Level
	for _, s := range scoredCandidates {
		if _, ok := groups[s.aw.Level]; !ok {
			groupOrder = append(groupOrder, s.aw.Level)
		}
		groups[s.aw.Level] = append(groups[s.aw.Level], s.aw)
	}

	var ordered []*Airway
	for _, lvl := range groupOrder {
		ordered = append(ordered, groups[lvl]...)
	}
	return ordered
}

func minDistance(a *Airway, near geo.Point) float64 {
	best := math.MaxFloat64
	for _, f := range a.Fixes {
		if d := f.Position.DistanceKM(near); d < best {
			best = d
		}
	}
	return best
}

// bfsPath runs BFS over a's traversable connections from fromIdx, recording
// parent pointers, and reconstructs the path to toIdx if reached.
func bfsPath(a *Airway, fromIdx, toIdx int) ([]SegmentInfo, bool) {
	parent := make([]int, len(a.Fixes))
	connIdx := make([]int, len(a.Fixes))
	visited := make([]bool, len(a.Fixes))
	for i := range parent {
		parent[i] = -1
		connIdx[i] = -1
	}

	queue := []int{fromIdx}
	visited[fromIdx] = true
	found := fromIdx == toIdx

	for len(queue) > 0 && !found {
		current := queue[0]
		queue = queue[1:]

		for i, c := range a.Connections {
			if c.FromIdx != current || !c.CanTraverse || visited[c.ToIdx] {
				continue
			}
			visited[c.ToIdx] = true
			parent[c.ToIdx] = current
			connIdx[c.ToIdx] = i
			queue = append(queue, c.ToIdx)
			if c.ToIdx == toIdx {
				found = true
				break
			}
		}
	}

	if !found {
		return nil, false
	}
	if fromIdx == toIdx {
		return nil, true
	}

	var path []SegmentInfo
	for current := toIdx; current != fromIdx; current = parent[current] {
		c := a.Connections[connIdx[current]]
		path = append(path, SegmentInfo{
			From:         a.Fixes[c.FromIdx],
			To:           a.Fixes[c.ToIdx],
			MinimumLevel: c.MinimumLevel,
			CanTraverse:  c.CanTraverse,
		})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// promote implements §4.F step 4: the first error of the failing result
// is the most specific non-direction diagnostic gathered, else
// InvalidAirwayDirection, promoted to Error severity.
func promote(diagnostics []route.ParsingError, tokenIndex int, token, airwayName string) []route.ParsingError {
	if len(diagnostics) == 0 {
		return []route.ParsingError{{
			Kind:       route.InvalidAirwayDirection,
			Message:    fmt.Sprintf("cannot traverse airway %s", airwayName),
			TokenIndex: tokenIndex,
			Token:      token,
			Level:      route.Error,
		}}
	}

	promotedIdx := -1
	for i, d := range diagnostics {
		if d.Kind != route.InvalidAirwayDirection {
			promotedIdx = i
			break
		}
	}
	if promotedIdx < 0 {
		promotedIdx = 0
	}

	ordered := make([]route.ParsingError, 0, len(diagnostics))
	promoted := diagnostics[promotedIdx]
	promoted.Level = route.Error
	ordered = append(ordered, promoted)
	for i, d := range diagnostics {
		if i != promotedIdx {
			ordered = append(ordered, d)
		}
	}
	return ordered
}
