package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/venturemap/venturemap/internal/ai"
	"github.com/venturemap/venturemap/internal/logger"
	"github.com/venturemap/venturemap/internal/matching"
	"github.com/venturemap/venturemap/internal/profile"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed prompt.md
var systemTemplate string

const (
	defaultMaxLogLength = 200
	maxReplyMatches     = 5
)

// Matcher forwards a free-text prompt plus a snapshot of candidate profiles
// to Gemini and re-attaches full profile records to the reply by name.
type Matcher struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewMatcher(generator contentGenerator, maxLogLength int, log *zap.Logger) *Matcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Matcher{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// replyMatch is one element of the model's JSON array reply. Decoded weakly
// since models return matchPercentage as a number or a quoted string.
type replyMatch struct {
	Name            string   `mapstructure:"name"`
	MatchPercentage float64  `mapstructure:"matchPercentage"`
	Reasons         []string `mapstructure:"reasons"`
}

// Match implements ai.Matcher. An empty prompt fails fast without a network
// call; remote and parse failures are wrapped in ai.ErrMatchFailed.
func (m *Matcher) Match(ctx context.Context, req ai.MatchRequest, candidates *profile.Profiles) ([]matching.Result, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}
	if candidates == nil || candidates.Len() == 0 {
		return nil, errors.New("candidate profiles are required")
	}

	system, err := buildSystemInstruction(req.RequesterType, candidates)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("gemini match request",
		zap.String("requester_type", req.RequesterType),
		zap.Int("candidates", candidates.Len()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateContent(ctx, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrMatchFailed, err)
	}

	m.logger.Debug("gemini match response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, m.maxLogLen)),
	)

	replies, err := parseReply(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrMatchFailed, err)
	}

	return hydrate(replies, req.RequesterType, candidates), nil
}

func buildSystemInstruction(requesterType string, candidates *profile.Profiles) (string, error) {
	type candidateContext struct {
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Sectors     []string `json:"sectors,omitempty"`
		Regions     []string `json:"regions,omitempty"`
		Stages      []string `json:"stages,omitempty"`
	}

	context := make([]candidateContext, 0, candidates.Len())
	for _, c := range candidates.Items {
		context = append(context, candidateContext{
			Name:        c.Name,
			Description: c.Description,
			Sectors:     c.Sectors,
			Regions:     c.Regions,
			Stages:      c.Stages,
		})
	}

	candidatesJSON, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate context: %w", err)
	}

	system := strings.ReplaceAll(systemTemplate, "{{REQUESTER_TYPE}}", requesterType)
	system = strings.ReplaceAll(system, "{{CANDIDATE_TYPE}}", profile.OppositeType(requesterType))
	system = strings.ReplaceAll(system, "{{CANDIDATES_JSON}}", string(candidatesJSON))

	return system, nil
}

func parseReply(raw string) ([]replyMatch, error) {
	cleaned := extractJSON(raw)

	var elements []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &elements); err != nil {
		return nil, fmt.Errorf("parse reply as json array: %w", err)
	}
	if len(elements) == 0 {
		return nil, errors.New("reply contains no matches")
	}

	matches := make([]replyMatch, 0, len(elements))
	for _, element := range elements {
		var match replyMatch
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &match,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, fmt.Errorf("build reply decoder: %w", err)
		}
		if err := decoder.Decode(element); err != nil {
			return nil, fmt.Errorf("decode reply element: %w", err)
		}

		if strings.TrimSpace(match.Name) == "" {
			continue
		}
		matches = append(matches, match)
	}

	if len(matches) == 0 {
		return nil, errors.New("reply contains no usable matches")
	}
	if len(matches) > maxReplyMatches {
		matches = matches[:maxReplyMatches]
	}

	return matches, nil
}

// hydrate re-attaches full profile records by name. Unknown names become
// minimal placeholder records so the caller still has something displayable.
func hydrate(replies []replyMatch, requesterType string, candidates *profile.Profiles) []matching.Result {
	results := make([]matching.Result, 0, len(replies))
	for _, reply := range replies {
		percentage := clampPercentage(reply.MatchPercentage)

		full := candidates.FindByName(reply.Name)
		if full == nil {
			full = &profile.Profile{
				ID:   uuid.NewString(),
				Type: profile.OppositeType(requesterType),
				Name: strings.TrimSpace(reply.Name),
			}
		}

		results = append(results, matching.Result{
			Profile:    *full,
			Percentage: percentage,
			Reasons:    reply.Reasons,
			Source:     matching.SourceAI,
		})
	}
	return results
}

func clampPercentage(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v + 0.5)
	}
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
