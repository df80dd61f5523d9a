package matching

import (
	"math/rand/v2"
	"strings"

	"github.com/venturemap/venturemap/internal/profile"
)

const (
	keywordResultLimit = 10
	keywordMinToken    = 3

	// Display-only percentage range for keyword hits. The number is a UI
	// affordance, never a confidence score.
	keywordMinPercent = 70
	keywordMaxPercent = 100
)

// percentFn synthesizes a display percentage for a keyword hit. Injectable
// for tests.
var percentFn = func() int {
	return keywordMinPercent + rand.IntN(keywordMaxPercent-keywordMinPercent+1)
}

// Keyword is the fallback search used when AI matching fails. It tokenizes
// the prompt on whitespace, drops tokens shorter than three characters and
// selects any candidate whose searchable text contains at least one token,
// case-insensitively. Hits keep encounter order; no ranking is applied.
func Keyword(prompt string, candidates *profile.Profiles) []Result {
	tokens := tokenize(prompt)
	if len(tokens) == 0 || candidates == nil {
		return nil
	}

	var results []Result
	for _, candidate := range candidates.Items {
		haystack := strings.ToLower(searchText(candidate))

		var hit string
		for _, token := range tokens {
			if strings.Contains(haystack, token) {
				hit = token
				break
			}
		}
		if hit == "" {
			continue
		}

		results = append(results, Result{
			Profile:    *candidate,
			Percentage: percentFn(),
			Reasons:    []string{"Keyword match: " + hit},
			Source:     SourceKeyword,
		})

		if len(results) == keywordResultLimit {
			break
		}
	}

	return results
}

func tokenize(prompt string) []string {
	var tokens []string
	for _, field := range strings.Fields(prompt) {
		if len([]rune(field)) < keywordMinToken {
			continue
		}
		tokens = append(tokens, strings.ToLower(field))
	}
	return tokens
}

func searchText(p *profile.Profile) string {
	parts := []string{p.Name, p.Description}
	parts = append(parts, p.Sectors...)
	parts = append(parts, p.Regions...)
	parts = append(parts, p.Stages...)
	return strings.Join(parts, " ")
}
