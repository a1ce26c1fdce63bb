package navdata

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/neoradar-project/route-handler-sub000/pkg/geo"
	"github.com/neoradar-project/route-handler-sub000/pkg/route"
)

func TestRegistryPriorityOrdering(t *testing.T) {
	r := NewRegistry(nil, false)

	navdataProvider := NewMapProvider("navdata", PriorityNavdata, []route.Waypoint{
		{Identifier: "TESIG", Position: geo.Point{LatDeg: 10, LonDeg: 10}},
	})
	nseProvider := NewMapProvider("nse", PriorityNSE, []route.Waypoint{
		{Identifier: "TESIG", Position: geo.Point{LatDeg: 20, LonDeg: 20}},
	})

	// Add navdata first; NSE's lower priority number must still win.
	r.AddProvider(navdataProvider)
	r.AddProvider(nseProvider)

	got := r.FindAll("TESIG")
	if len(got) != 1 || got[0].Position.LatDeg != 20 {
		t.Errorf("expected NSE override to win, got %s", spew.Sdump(got))
	}

	if names := r.ProviderNames(); names[0] != "nse" || names[1] != "navdata" {
		t.Errorf("expected nse before navdata, got %v", names)
	}
}

func TestRegistryFindClosest(t *testing.T) {
	r := NewRegistry(nil, false)
	r.AddProvider(NewMapProvider("navdata", PriorityNavdata, []route.Waypoint{
		{Identifier: "DUPE", Position: geo.Point{LatDeg: 0, LonDeg: 0}},
		{Identifier: "DUPE", Position: geo.Point{LatDeg: 50, LonDeg: 50}},
	}))

	closest, ok := r.FindClosest("DUPE", geo.Point{LatDeg: 1, LonDeg: 1})
	if !ok || closest.Position.LatDeg != 0 {
		t.Errorf("expected the (0,0) candidate, got %s", spew.Sdump(closest))
	}
}

func TestRegistryCachePopulatesOnHit(t *testing.T) {
	r := NewRegistry(nil, true)
	r.AddProvider(NewMapProvider("navdata", PriorityNavdata, []route.Waypoint{
		{Identifier: "TESIG", Position: geo.Point{LatDeg: 1, LonDeg: 1}},
	}))

	if keys := r.CacheKeys(); len(keys) != 0 {
		t.Fatalf("expected empty cache before any lookup, got %v", keys)
	}
	r.FindAll("TESIG")
	if keys := r.CacheKeys(); len(keys) != 1 || keys[0] != "TESIG" {
		t.Errorf("expected TESIG cached after lookup, got %v", keys)
	}
}

func TestRegistryFindAllEmptyIdentifier(t *testing.T) {
	r := NewRegistry(nil, false)
	if got := r.FindAll(""); got != nil {
		t.Errorf("expected nil for empty identifier, got %v", got)
	}
}

func TestRegistryRequireProviders(t *testing.T) {
	r := NewRegistry(nil, false)
	if err := r.RequireProviders(); err != ErrEmptyRegistry {
		t.Errorf("expected ErrEmptyRegistry on a fresh registry, got %v", err)
	}

	r.AddProvider(NewMapProvider("navdata", PriorityNavdata, nil))
	if err := r.RequireProviders(); err != nil {
		t.Errorf("expected no error once a provider is added, got %v", err)
	}
}

func TestRegistryProviderLookup(t *testing.T) {
	r := NewRegistry(nil, false)
	r.AddProvider(NewMapProvider("navdata", PriorityNavdata, nil))

	if _, err := r.Provider("nse"); err != ErrUnknownProvider {
		t.Errorf("expected ErrUnknownProvider for an unadded name, got %v", err)
	}
	if p, err := r.Provider("navdata"); err != nil || p.Name() != "navdata" {
		t.Errorf("expected to find the navdata provider, got %v / %v", p, err)
	}
}
