package procedure

import (
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

// Store is the global SID/STAR store: a flat procedures array plus an
// airport ICAO -> procedure-index map. The map is an orderedmap so
// Airports()/diagnostics dumps iterate airports in insertion order rather
// than Go's randomized map order, matching the deterministic iteration
// the rest of this codebase's navdata-adjacent stores rely on.
type Store struct {
	procedures []route.Procedure
	byAirport  *orderedmap.OrderedMap
}

// NewStore returns an empty Store ready for bulk loading.
func NewStore() *Store {
	return &Store{byAirport: orderedmap.New()}
}

// Add inserts p into the store and indexes it under its airport ICAO.
func (s *Store) Add(p route.Procedure) {
	idx := len(s.procedures)
	s.procedures = append(s.procedures, p)

	raw, ok := s.byAirport.Get(p.AirportICAO)
	var indices []int
	if ok {
		indices, _ = raw.([]int)
	}
	indices = append(indices, idx)
	s.byAirport.Set(p.AirportICAO, indices)
}

// ProceduresForAirport returns every procedure indexed under icao, in
// insertion order.
func (s *Store) ProceduresForAirport(icao string) []route.Procedure {
	raw, ok := s.byAirport.Get(icao)
	if !ok {
		return nil
	}
	indices, _ := raw.([]int)
	out := make([]route.Procedure, len(indices))
	for i, idx := range indices {
		out[i] = s.procedures[idx]
	}
	return out
}

// Airports returns the ICAOs the store has procedures for, in insertion
// order.
func (s *Store) Airports() []string {
	return s.byAirport.Keys()
}

// FoundProcedure is the result of Find: a procedure/runway match, possibly
// partial (name known but runway mismatched, or runway known but no
// procedure in the dataset), plus any diagnostics the match produced.
type FoundProcedure struct {
	HasProcedureName bool
	ProcedureName    string
	HasRunway        bool
	Runway           string
	HasExtracted     bool
	Extracted        route.Procedure
	Errors           []route.ParsingError
}

// Find implements the §4.D/§9 FindProcedure algorithm: it splits a
// PROC/RW token, special-cases a runway filed directly against the anchor
// ICAO (e.g. "ZSNJ/06"), then fuzzy-matches the procedure part against
// every procedure of the given type at icao.
func (s *Store) Find(token, icao string, procType route.ProcedureType, tokenIndex int) FoundProcedure {
	runway, hasRunway := FindRunway(token)
	procedureToken := token
	if hasRunway {
		procedureToken = token[:strings.IndexByte(token, '/')]
	}

	if hasRunway && len(procedureToken) == 4 {
		if procedureToken == icao {
			return FoundProcedure{
				HasProcedureName: true,
				ProcedureName:    procedureToken,
				HasRunway:        true,
				Runway:           runway,
			}
		}
		return FoundProcedure{
			Errors: []route.ParsingError{{
				Kind:       route.InvalidRunway,
				Message:    "expected runway for " + icao + " but found a runway for " + procedureToken,
				TokenIndex: tokenIndex,
				Token:      token,
				Level:      route.Error,
			}},
		}
	}

	var matching []route.Procedure
	for _, p := range s.procedures {
		if p.AirportICAO != icao || p.Type != procType {
			continue
		}
		if p.Name == procedureToken || AreRelated(p.Name, procedureToken) {
			matching = append(matching, p)
		}
	}

	if len(matching) == 0 {
		found := FoundProcedure{
			HasProcedureName: true,
			ProcedureName:    procedureToken,
			Errors: []route.ParsingError{{
				Kind:       route.UnknownProcedure,
				Message:    "no matching procedure found for " + procedureToken + " at " + icao,
				TokenIndex: tokenIndex,
				Token:      procedureToken,
				Level:      route.Info,
			}},
		}
		if hasRunway {
			found.HasRunway = true
			found.Runway = runway
		}
		return found
	}

	if hasRunway {
		for _, p := range matching {
			if p.Runway == runway {
				return FoundProcedure{
					HasProcedureName: true,
					ProcedureName:    p.Name,
					HasRunway:        true,
					Runway:           runway,
					HasExtracted:     true,
					Extracted:        p,
				}
			}
		}
		return FoundProcedure{
			HasProcedureName: true,
			ProcedureName:    matching[0].Name,
			HasRunway:        true,
			Runway:           runway,
			HasExtracted:     true,
			Extracted:        matching[0],
			Errors: []route.ParsingError{{
				Kind:       route.ProcedureRunwayMismatch,
				Message:    "no matching runway " + runway + " found for procedure " + procedureToken + " at " + icao,
				TokenIndex: tokenIndex,
				Token:      procedureToken,
				Level:      route.Error,
			}},
		}
	}

	return FoundProcedure{
		HasProcedureName: true,
		ProcedureName:    matching[0].Name,
		HasExtracted:     true,
		Extracted:        matching[0],
	}
}
