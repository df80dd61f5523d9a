package matching

import (
	"strings"
	"testing"

	"github.com/venturemap/venturemap/internal/profile"
)

func candidateSet() *profile.Profiles {
	return &profile.Profiles{Items: []*profile.Profile{
		{
			ID:      "1",
			Name:    "Acme Capital",
			Sectors: []string{"Fintech", "Healthcare"},
			Regions: []string{"Rwanda"},
			Stages:  []string{"Seed"},
		},
		{
			ID:      "2",
			Name:    "GreenRoots Ventures",
			Sectors: []string{"Agriculture"},
			Regions: []string{"Kenya"},
			Stages:  []string{"Series A"},
		},
		{
			ID:      "3",
			Name:    "Savanna Grants",
			Sectors: []string{"Fintech"},
			Regions: []string{"Rwanda"},
			Stages:  []string{"Seed"},
		},
	}}
}

func TestManualEmptySelectionYieldsNoResults(t *testing.T) {
	results := Manual(Selection{}, candidateSet(), DefaultWeights())
	if len(results) != 0 {
		t.Fatalf("expected no results for empty selection, got %d", len(results))
	}
}

func TestManualWeightedPercentage(t *testing.T) {
	sel := Selection{
		Sectors: []string{"Fintech", "Education"},
		Regions: []string{"Rwanda"},
		Stages:  []string{"Seed"},
	}

	results := Manual(sel, candidateSet(), DefaultWeights())
	if len(results) == 0 {
		t.Fatal("expected results")
	}

	// Acme: sectors 1/2, regions 1/1, stages 1/1
	// round(100 * (0.40*0.5 + 0.35 + 0.25)) = 80
	top := results[0]
	if top.Percentage != 80 {
		t.Fatalf("expected 80%%, got %d%%", top.Percentage)
	}
	if top.Percentage < 0 || top.Percentage > 100 {
		t.Fatalf("percentage out of range: %d", top.Percentage)
	}
	if top.Source != SourceManual {
		t.Fatalf("unexpected source %q", top.Source)
	}
}

func TestManualExcludesZeroScores(t *testing.T) {
	sel := Selection{Sectors: []string{"Spacetech"}}

	results := Manual(sel, candidateSet(), DefaultWeights())
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestManualSortStableOnTies(t *testing.T) {
	sel := Selection{Sectors: []string{"Fintech"}}

	results := Manual(sel, candidateSet(), DefaultWeights())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Acme (candidate 1) and Savanna (candidate 3) both score 40; stored
	// order must be preserved.
	if results[0].Profile.ID != "1" || results[1].Profile.ID != "3" {
		t.Fatalf("tie broke candidate order: %s, %s", results[0].Profile.ID, results[1].Profile.ID)
	}
}

func TestManualTruncatesToTopFive(t *testing.T) {
	candidates := &profile.Profiles{}
	for i := 0; i < 8; i++ {
		candidates.Items = append(candidates.Items, &profile.Profile{
			ID:      string(rune('a' + i)),
			Sectors: []string{"Fintech"},
		})
	}

	results := Manual(Selection{Sectors: []string{"Fintech"}}, candidates, DefaultWeights())
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
}

func TestManualReasonsPerMatchingDimension(t *testing.T) {
	sel := Selection{
		Sectors: []string{"Fintech"},
		Regions: []string{"Rwanda"},
		Stages:  []string{"Series B"},
	}

	results := Manual(sel, candidateSet(), DefaultWeights())
	if len(results) == 0 {
		t.Fatal("expected results")
	}

	reasons := strings.Join(results[0].Reasons, "; ")
	if !strings.Contains(reasons, "Shared sectors: Fintech") {
		t.Fatalf("missing sector reason: %s", reasons)
	}
	if !strings.Contains(reasons, "Common regions: Rwanda") {
		t.Fatalf("missing region reason: %s", reasons)
	}
	if strings.Contains(reasons, "Matching stages") {
		t.Fatalf("unexpected stage reason for empty intersection: %s", reasons)
	}
}

func TestManualCustomWeights(t *testing.T) {
	sel := Selection{Sectors: []string{"Fintech"}, Regions: []string{"Rwanda"}}
	w := Weights{Sectors: 1.0}

	results := Manual(sel, candidateSet(), w)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Percentage != 100 {
		t.Fatalf("expected 100%% with sector-only weight, got %d%%", results[0].Percentage)
	}
}
