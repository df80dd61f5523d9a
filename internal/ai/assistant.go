package ai

import (
	"context"
	"errors"

	"github.com/venturemap/venturemap/internal/matching"
	"github.com/venturemap/venturemap/internal/profile"
)

// ErrMatchFailed marks any AI-subsystem failure: the remote call, a non-JSON
// reply or a malformed array. Callers may treat it as an invitation to fall
// back to keyword search; that fallback is caller policy, not part of this
// contract.
var ErrMatchFailed = errors.New("ai matching failed")

// MatchRequest carries the requester side and the free-text prompt.
type MatchRequest struct {
	RequesterType string `json:"requesterType"`
	Prompt        string `json:"prompt"`
}

// Matcher asks a language model to pick the best candidates for a prompt and
// returns results re-hydrated against the known candidate set.
type Matcher interface {
	Match(ctx context.Context, req MatchRequest, candidates *profile.Profiles) ([]matching.Result, error)
}
