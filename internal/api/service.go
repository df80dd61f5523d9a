package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/venturemap/venturemap/internal/ai"
	"github.com/venturemap/venturemap/internal/listing"
	"github.com/venturemap/venturemap/internal/matching"
	"github.com/venturemap/venturemap/internal/profile"
	"github.com/venturemap/venturemap/internal/urlqueue"
)

// ListingStore is the slice of the hosted store the API needs.
type ListingStore interface {
	Startups(ctx context.Context) (*listing.Startups, error)
	Investors(ctx context.Context) (*listing.Investors, error)
	MatchProfiles(ctx context.Context, profileType string) (*profile.Profiles, error)
	InsertStartup(ctx context.Context, s *listing.Startup) error
}

var (
	// ErrAIBusy rejects a second AI match while one is outstanding. The
	// trigger control is disabled client-side; this makes the guard explicit
	// server-side too.
	ErrAIBusy = errors.New("an AI match request is already running")

	// ErrAIDisabled is returned when no matcher is configured.
	ErrAIDisabled = errors.New("AI matching is not configured")

	// ErrStore marks a failed call to the hosted listing store so handlers
	// can report which subsystem degraded.
	ErrStore = errors.New("listing store unavailable")
)

// Service wires the store, the matchers and the admin URL queues together
// for the HTTP handlers.
type Service struct {
	logger     *zap.Logger
	store      ListingStore
	queueStore urlqueue.RemoteQueue
	notifier   urlqueue.Notifier
	matcher    ai.Matcher
	weights    matching.Weights

	aiBusy atomic.Bool

	// One working queue per type, guarded for the single-admin usage
	// pattern. Entries live only until persisted.
	queueMu sync.Mutex
	queues  map[urlqueue.Type]*urlqueue.Queue
}

func NewService(logger *zap.Logger, store ListingStore, queueStore urlqueue.RemoteQueue, notifier urlqueue.Notifier, matcher ai.Matcher, weights matching.Weights) *Service {
	if weights == (matching.Weights{}) {
		weights = matching.DefaultWeights()
	}

	return &Service{
		logger:     logger,
		store:      store,
		queueStore: queueStore,
		notifier:   notifier,
		matcher:    matcher,
		weights:    weights,
		queues: map[urlqueue.Type]*urlqueue.Queue{
			urlqueue.TypeStartup: urlqueue.New(urlqueue.TypeStartup),
			urlqueue.TypeVC:      urlqueue.New(urlqueue.TypeVC),
		},
	}
}

// Startups fetches and filters the startup directory.
func (s *Service) Startups(ctx context.Context, q listing.Query) (*listing.Startups, []string, error) {
	items, err := s.store.Startups(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	fields := make([]string, 0, items.Len())
	for _, item := range items.Items {
		fields = append(fields, item.Sector)
	}

	return listing.FilterStartups(items, q), listing.SectorOptions(fields), nil
}

// Investors fetches and filters the investor/grant-program directory.
func (s *Service) Investors(ctx context.Context, q listing.Query) (*listing.Investors, []string, error) {
	items, err := s.store.Investors(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	fields := make([]string, 0, items.Len())
	for _, item := range items.Items {
		fields = append(fields, item.Sector)
	}

	return listing.FilterInvestors(items, q), listing.SectorOptions(fields), nil
}

// SubmitStartup validates and inserts one contributed listing row.
func (s *Service) SubmitStartup(ctx context.Context, entry *listing.Startup) error {
	if entry == nil {
		return errors.New("listing is required")
	}

	var missing []string
	if strings.TrimSpace(entry.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(entry.WhatTheyDo) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(entry.Sector) == "" {
		missing = append(missing, "sector")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if err := s.store.InsertStartup(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.logger.Info("listing contributed", zap.String("name", entry.Name))
	return nil
}

// ManualMatch scores the built-in demo candidates against the selection.
func (s *Service) ManualMatch(requesterType string, sel matching.Selection) ([]matching.Result, error) {
	if sel.IsEmpty() {
		return nil, errors.New("select at least one sector, region or stage")
	}

	candidates := profile.Demo(requesterType)
	return matching.Manual(sel, candidates, s.weights), nil
}

// AIMatch forwards the request to the configured matcher. When the matcher
// fails and fallback is requested, keyword search over the same candidate
// set is returned instead, flagged with a warning. Only one AI match may be
// in flight at a time.
func (s *Service) AIMatch(ctx context.Context, req ai.MatchRequest, fallback bool) ([]matching.Result, string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, "", errors.New("prompt must not be empty")
	}
	if s.matcher == nil {
		return nil, "", ErrAIDisabled
	}

	if !s.aiBusy.CompareAndSwap(false, true) {
		return nil, "", ErrAIBusy
	}
	defer s.aiBusy.Store(false)

	candidates, err := s.store.MatchProfiles(ctx, profile.OppositeType(req.RequesterType))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrStore, err)
	}

	results, err := s.matcher.Match(ctx, req, candidates)
	if err == nil {
		return results, "", nil
	}

	if fallback && errors.Is(err, ai.ErrMatchFailed) {
		s.logger.Warn("ai match failed, falling back to keyword search", zap.Error(err))
		return matching.Keyword(req.Prompt, candidates), "AI matching failed; showing keyword results", nil
	}

	return nil, "", err
}

// Queue returns the working queue for a type.
func (s *Service) Queue(qtype urlqueue.Type) *urlqueue.Queue {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return s.queues[qtype]
}

func (s *Service) QueueAdd(qtype urlqueue.Type, url string) error {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return s.queues[qtype].Add(url)
}

func (s *Service) QueueAddBulk(qtype urlqueue.Type, text string) int {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return s.queues[qtype].AddBulk(text)
}

func (s *Service) QueueAddCSV(qtype urlqueue.Type, text string) int {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return s.queues[qtype].AddCSV(text)
}

func (s *Service) QueueRemove(qtype urlqueue.Type, url string) bool {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return s.queues[qtype].Remove(url)
}

func (s *Service) QueueExport(qtype urlqueue.Type) (urlqueue.ExportDoc, string) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return s.queues[qtype].Export(time.Now().UTC())
}

// QueuePersist saves the working queue and fires the scrape trigger.
func (s *Service) QueuePersist(ctx context.Context, qtype urlqueue.Type) (*urlqueue.PersistResult, error) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return urlqueue.Persist(ctx, s.queueStore, s.notifier, s.queues[qtype], s.logger)
}
