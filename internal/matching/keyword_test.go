package matching

import (
	"testing"

	"github.com/venturemap/venturemap/internal/profile"
)

func fixedPercent(t *testing.T, value int) {
	t.Helper()
	original := percentFn
	percentFn = func() int { return value }
	t.Cleanup(func() { percentFn = original })
}

func TestKeywordMatchesSurvivingToken(t *testing.T) {
	fixedPercent(t, 85)

	candidates := &profile.Profiles{Items: []*profile.Profile{
		{ID: "1", Name: "PayLeaf", Description: "Fintech payments for merchants"},
		{ID: "2", Name: "AgroLink", Description: "Farm produce marketplace"},
	}}

	results := Keyword("Looking for fintech startups", candidates)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Profile.ID != "1" {
		t.Fatalf("expected PayLeaf, got %s", results[0].Profile.Name)
	}
	if results[0].Percentage != 85 {
		t.Fatalf("expected injected percentage, got %d", results[0].Percentage)
	}
	if results[0].Source != SourceKeyword {
		t.Fatalf("unexpected source %q", results[0].Source)
	}
}

func TestKeywordDropsShortTokens(t *testing.T) {
	candidates := &profile.Profiles{Items: []*profile.Profile{
		{ID: "1", Name: "AI Co", Description: "an ai shop"},
	}}

	// Every token is two characters or fewer, so nothing survives.
	results := Keyword("ai in rw", candidates)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestKeywordSynthesizedPercentageRange(t *testing.T) {
	candidates := &profile.Profiles{Items: []*profile.Profile{
		{ID: "1", Description: "fintech"},
	}}

	for i := 0; i < 50; i++ {
		results := Keyword("fintech", candidates)
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if p := results[0].Percentage; p < keywordMinPercent || p > keywordMaxPercent {
			t.Fatalf("percentage %d outside [%d,%d]", p, keywordMinPercent, keywordMaxPercent)
		}
	}
}

func TestKeywordTruncatesToTenInEncounterOrder(t *testing.T) {
	fixedPercent(t, 70)

	candidates := &profile.Profiles{}
	for i := 0; i < 15; i++ {
		candidates.Items = append(candidates.Items, &profile.Profile{
			ID:          string(rune('a' + i)),
			Description: "fintech",
		})
	}

	results := Keyword("fintech", candidates)
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Profile.ID != string(rune('a'+i)) {
			t.Fatalf("encounter order broken at %d: %s", i, r.Profile.ID)
		}
	}
}

func TestKeywordEmptyPrompt(t *testing.T) {
	candidates := &profile.Profiles{Items: []*profile.Profile{{ID: "1", Description: "fintech"}}}

	if results := Keyword("   ", candidates); len(results) != 0 {
		t.Fatalf("expected no results for blank prompt, got %d", len(results))
	}
}
