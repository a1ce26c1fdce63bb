package airway

import (
	"errors"

	"golang.org/x/exp/slices"

	applog "github.com/neoradar-project/route-handler-sub000/pkg/log"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

// ErrNotFinalized is a construction-time sentinel (§10) for callers that
// want to confirm a Network has been through Finalize before it's handed
// to a Parser; Validate itself doesn't require finalization (BFS never
// consults OrderedFixes), but an un-finalized Network usually means a
// loader step was skipped.
var ErrNotFinalized = errors.New("airway: network not finalized")

// Network is the full per-name multimap of Airway objects: the §3
// "multiple Airway objects may share the same name" model, disambiguated
// at lookup time by proximity to a reference point.
type Network struct {
	byName    map[string][]*Airway
	finalized bool
	logger    *applog.Logger
}

// NewNetwork returns an empty Network ready for bulk loading via AddSegment.
func NewNetwork(logger *applog.Logger) *Network {
	return &Network{byName: make(map[string][]*Airway), logger: logger}
}

// AddSegment implements §4.E step 1: reuse an existing Airway sharing
// `name` if one already has from or to as a member fix (geographically
// contiguous namesake), otherwise start a new one.
func (n *Network) AddSegment(name, levelChar string, from, to route.Waypoint, minLevel uint32, canTraverse bool) {
	var target *Airway
	for _, candidate := range n.byName[name] {
		if candidate.HasFix(from.Identifier) || candidate.HasFix(to.Identifier) {
			target = candidate
			break
		}
	}

	if target == nil {
		target = newAirway(name, LevelFromChar(levelChar))
		n.byName[name] = append(n.byName[name], target)
		n.finalized = false
	}

	target.AddSegment(from, to, minLevel, canTraverse)
}

// Finalize computes display ordering for every airway exactly once, per
// §3's Lifecycles contract. Safe to call more than once; later calls are
// no-ops beyond recomputation (finalize itself is idempotent).
func (n *Network) Finalize() {
	for _, candidates := range n.byName {
		for _, aw := range candidates {
			aw.finalize()
		}
	}
	n.finalized = true
}

// RequireFinalized returns ErrNotFinalized unless Finalize has run since
// the last AddSegment call that could have introduced a new airway.
func (n *Network) RequireFinalized() error {
	if !n.finalized {
		return ErrNotFinalized
	}
	return nil
}

// Exists reports whether any airway by this name has been loaded at all,
// used to distinguish UnknownAirway from AirwayFixNotFound in Validate.
func (n *Network) Exists(name string) bool {
	return len(n.byName[name]) > 0
}

// Candidates returns every Airway sharing the given name.
func (n *Network) Candidates(name string) []*Airway {
	return n.byName[name]
}

// Names returns every distinct airway name loaded, sorted for diagnostics
// output that doesn't vary run to run with Go's randomized map order.
func (n *Network) Names() []string {
	names := make([]string, 0, len(n.byName))
	for name := range n.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
