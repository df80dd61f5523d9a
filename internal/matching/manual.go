package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/venturemap/venturemap/internal/profile"
)

const manualResultLimit = 5

// Weights are the per-dimension coefficients of the manual scorer. The
// defaults are a product choice, not a business invariant, so they stay
// configurable.
type Weights struct {
	Sectors float64 `json:"sectors" mapstructure:"sectors"`
	Regions float64 `json:"regions" mapstructure:"regions"`
	Stages  float64 `json:"stages" mapstructure:"stages"`
}

func DefaultWeights() Weights {
	return Weights{Sectors: 0.40, Regions: 0.35, Stages: 0.25}
}

// Selection holds the requester's chosen category sets. Any of the sets may
// be empty; an empty set contributes zero to the score.
type Selection struct {
	Sectors []string `json:"sectors"`
	Regions []string `json:"regions"`
	Stages  []string `json:"stages"`
}

func (s Selection) IsEmpty() bool {
	return len(s.Sectors) == 0 && len(s.Regions) == 0 && len(s.Stages) == 0
}

// Manual scores every candidate against the selection, drops zero scores,
// sorts descending (stable, so equal percentages keep candidate order) and
// returns at most five results. An all-empty selection yields no results.
func Manual(sel Selection, candidates *profile.Profiles, w Weights) []Result {
	if sel.IsEmpty() || candidates == nil {
		return nil
	}

	var results []Result
	for _, candidate := range candidates.Items {
		sectors := intersect(sel.Sectors, candidate.Sectors)
		regions := intersect(sel.Regions, candidate.Regions)
		stages := intersect(sel.Stages, candidate.Stages)

		score := w.Sectors*ratio(sectors, sel.Sectors) +
			w.Regions*ratio(regions, sel.Regions) +
			w.Stages*ratio(stages, sel.Stages)

		percentage := int(math.Round(score * 100))
		if percentage <= 0 {
			continue
		}

		var reasons []string
		if len(sectors) > 0 {
			reasons = append(reasons, "Shared sectors: "+strings.Join(sectors, ", "))
		}
		if len(regions) > 0 {
			reasons = append(reasons, "Common regions: "+strings.Join(regions, ", "))
		}
		if len(stages) > 0 {
			reasons = append(reasons, "Matching stages: "+strings.Join(stages, ", "))
		}

		results = append(results, Result{
			Profile:    *candidate,
			Percentage: percentage,
			Reasons:    reasons,
			Source:     SourceManual,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Percentage > results[j].Percentage
	})

	if len(results) > manualResultLimit {
		results = results[:manualResultLimit]
	}

	return results
}

// intersect returns the selection values present in the candidate set,
// preserving selection order. Comparison is case-insensitive.
func intersect(selected, candidate []string) []string {
	var common []string
	for _, s := range selected {
		for _, c := range candidate {
			if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(c)) {
				common = append(common, strings.TrimSpace(s))
				break
			}
		}
	}
	return common
}

func ratio(common, selected []string) float64 {
	if len(selected) == 0 {
		return 0
	}
	return float64(len(common)) / float64(len(selected))
}
