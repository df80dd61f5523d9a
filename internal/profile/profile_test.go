package profile

import "testing"

func TestFindByNamePrefersExactMatch(t *testing.T) {
	profiles := &Profiles{Items: []*Profile{
		{ID: "1", Name: "Acme Capital Partners"},
		{ID: "2", Name: "Acme Capital"},
	}}

	got := profiles.FindByName("acme capital")
	if got == nil || got.ID != "2" {
		t.Fatalf("expected exact match to win, got %+v", got)
	}
}

func TestFindByNameSubstringBothWays(t *testing.T) {
	profiles := &Profiles{Items: []*Profile{
		{ID: "1", Name: "GreenRoots Ventures"},
	}}

	if got := profiles.FindByName("GreenRoots"); got == nil || got.ID != "1" {
		t.Fatalf("expected shortened name to resolve, got %+v", got)
	}
	if got := profiles.FindByName("The GreenRoots Ventures Fund"); got == nil || got.ID != "1" {
		t.Fatalf("expected padded name to resolve, got %+v", got)
	}
}

func TestFindByNameUnknown(t *testing.T) {
	profiles := &Profiles{Items: []*Profile{{ID: "1", Name: "Acme Capital"}}}

	if got := profiles.FindByName("Ghost Fund"); got != nil {
		t.Fatalf("expected nil for unknown name, got %+v", got)
	}
	if got := profiles.FindByName("  "); got != nil {
		t.Fatalf("expected nil for blank name, got %+v", got)
	}
}

func TestOppositeType(t *testing.T) {
	if got := OppositeType(TypeStartup); got != TypeVC {
		t.Fatalf("startup requester should get vc candidates, got %s", got)
	}
	if got := OppositeType(" VC "); got != TypeStartup {
		t.Fatalf("vc requester should get startup candidates, got %s", got)
	}
}

func TestDemoReturnsOppositeSideOnly(t *testing.T) {
	vcs := Demo(TypeStartup)
	if vcs.Len() == 0 {
		t.Fatal("expected demo vc candidates")
	}
	for _, item := range vcs.Items {
		if item.Type != TypeVC {
			t.Fatalf("unexpected candidate type %s", item.Type)
		}
	}
}
