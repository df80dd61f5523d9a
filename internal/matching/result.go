package matching

import "github.com/venturemap/venturemap/internal/profile"

// Source tells callers where a match percentage came from. Keyword
// percentages are synthesized for display and carry no real confidence.
const (
	SourceManual  = "manual"
	SourceAI      = "ai"
	SourceKeyword = "keyword"
)

// Result pairs a candidate profile with its computed percentage and the
// human-readable reasons. Results are recomputed on every query and never
// persisted.
type Result struct {
	Profile    profile.Profile `json:"profile"`
	Percentage int             `json:"matchPercentage"`
	Reasons    []string        `json:"reasons"`
	Source     string          `json:"source"`
}
