// Package airway implements the per-name directed multigraph of fixes
// from §4.E/§4.F: construction (AddSegment with fix interning and
// connection dedup/overwrite), a display-only finalize pass, and the BFS
// traversal validator with level gating and multi-level fallback.
package airway

import (
	"sort"

	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

// Level is the enroute altitude class an airway applies to.
type Level int

const (
	Unknown Level = iota
	Both
	High
	Low
)

// LevelFromChar decodes the single-character level class used in the §6
// airway text format ('B'/'H'/'L'); anything else is Unknown.
func LevelFromChar(c string) Level {
	if len(c) == 0 {
		return Unknown
	}
	switch c[0] {
	case 'B':
		return Both
	case 'H':
		return High
	case 'L':
		return Low
	default:
		return Unknown
	}
}

func (l Level) String() string {
	switch l {
	case Both:
		return "B"
	case High:
		return "H"
	case Low:
		return "L"
	default:
		return "U"
	}
}

// Connection is one directed edge between two interned fix indices.
type Connection struct {
	FromIdx      int
	ToIdx        int
	MinimumLevel uint32
	CanTraverse  bool
}

// Airway is a single named directed multigraph instance. Multiple Airway
// objects may share a Name (regional namesakes); the Network is what
// disambiguates between them.
type Airway struct {
	Name  string
	Level Level

	Fixes        []route.Waypoint
	fixIndices   map[string]int
	Connections  []Connection
	OrderedFixes []route.Waypoint // display order only, computed by finalize
}

func newAirway(name string, level Level) *Airway {
	return &Airway{
		Name:       name,
		Level:      level,
		fixIndices: make(map[string]int),
	}
}

// internFix dedupes by identifier, insertion order, per §3's Airway graph
// invariant that fix_indices[name] is bijective with fixes[].
func (a *Airway) internFix(w route.Waypoint) int {
	if idx, ok := a.fixIndices[w.Identifier]; ok {
		return idx
	}
	idx := len(a.Fixes)
	a.Fixes = append(a.Fixes, w)
	a.fixIndices[w.Identifier] = idx
	return idx
}

// HasFix reports whether identifier names a fix already interned into a.
func (a *Airway) HasFix(identifier string) bool {
	_, ok := a.fixIndices[identifier]
	return ok
}

// AddSegment interns from/to and inserts or overwrites the (from, to)
// connection, per §4.E step 3: later insertions win on minimum_level and
// can_traverse for the same ordered pair.
func (a *Airway) AddSegment(from, to route.Waypoint, minLevel uint32, canTraverse bool) {
	fromIdx := a.internFix(from)
	toIdx := a.internFix(to)

	for i := range a.Connections {
		if a.Connections[i].FromIdx == fromIdx && a.Connections[i].ToIdx == toIdx {
			a.Connections[i].MinimumLevel = minLevel
			a.Connections[i].CanTraverse = canTraverse
			return
		}
	}
	a.Connections = append(a.Connections, Connection{FromIdx: fromIdx, ToIdx: toIdx, MinimumLevel: minLevel, CanTraverse: canTraverse})
}

func (a *Airway) reverseTraversable(from, to int) bool {
	for _, c := range a.Connections {
		if c.FromIdx == from && c.ToIdx == to && c.CanTraverse {
			return true
		}
	}
	return false
}

// directional reports whether any traversable edge lacks a traversable
// reverse counterpart — the §4.E definition of "directional" for display
// ordering purposes.
func (a *Airway) directional() bool {
	for _, c := range a.Connections {
		if !c.CanTraverse {
			continue
		}
		if !a.reverseTraversable(c.ToIdx, c.FromIdx) {
			return true
		}
	}
	return false
}

// finalize computes OrderedFixes for display only; it never reassigns
// Fixes/Connections indices (see SPEC_FULL.md §4.E/§13 — the reference
// implementation's in-place overwrite is deliberately not replicated,
// since BFS path reconstruction depends on those indices staying stable).
func (a *Airway) finalize() {
	if len(a.Fixes) == 0 {
		return
	}

	if !a.directional() {
		ordered := append([]route.Waypoint(nil), a.Fixes...)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Position.LonDeg < ordered[j].Position.LonDeg
		})
		a.OrderedFixes = ordered
		return
	}

	inDegree := make([]int, len(a.Fixes))
	outDegree := make([]int, len(a.Fixes))
	for _, c := range a.Connections {
		if c.CanTraverse {
			inDegree[c.ToIdx]++
			outDegree[c.FromIdx]++
		}
	}

	startIdx := 0
	minInDegree := int(^uint(0) >> 1) // max int
	for i := range a.Fixes {
		if inDegree[i] < minInDegree && outDegree[i] > 0 {
			minInDegree = inDegree[i]
			startIdx = i
		}
	}

	visited := make([]bool, len(a.Fixes))
	var ordered []route.Waypoint
	var dfs func(int)
	dfs = func(current int) {
		visited[current] = true
		ordered = append(ordered, a.Fixes[current])
		for _, c := range a.Connections {
			if c.FromIdx == current && c.CanTraverse && !visited[c.ToIdx] {
				dfs(c.ToIdx)
			}
		}
	}
	dfs(startIdx)

	for i := range a.Fixes {
		if !visited[i] {
			ordered = append(ordered, a.Fixes[i])
		}
	}

	a.OrderedFixes = ordered
}
