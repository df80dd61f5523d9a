package store

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/venturemap/venturemap/internal/listing"
	"github.com/venturemap/venturemap/internal/profile"
	"github.com/venturemap/venturemap/internal/urlqueue"
)

const (
	tableStartups      = "startups"
	tableInvestors     = "investors"
	tableMatchProfiles = "match_profiles"
	tableStartupURLs   = "startup_urls"
	tableVCURLs        = "vc_urls"
)

func selectAll() url.Values {
	q := url.Values{}
	q.Set("select", "*")
	return q
}

// Startups reads the full startup directory.
func (c *Client) Startups(ctx context.Context) (*listing.Startups, error) {
	var items []*listing.Startup
	if err := c.getJSON(ctx, tableStartups, selectAll(), &items); err != nil {
		return nil, fmt.Errorf("fetch startups: %w", err)
	}
	return &listing.Startups{Items: items}, nil
}

// Investors reads the full investor/grant-program directory.
func (c *Client) Investors(ctx context.Context) (*listing.Investors, error) {
	var items []*listing.Investor
	if err := c.getJSON(ctx, tableInvestors, selectAll(), &items); err != nil {
		return nil, fmt.Errorf("fetch investors: %w", err)
	}
	return &listing.Investors{Items: items}, nil
}

// MatchProfiles reads the stored match profiles of the given type.
func (c *Client) MatchProfiles(ctx context.Context, profileType string) (*profile.Profiles, error) {
	q := selectAll()
	q.Set("type", "eq."+profileType)

	var items []*profile.Profile
	if err := c.getJSON(ctx, tableMatchProfiles, q, &items); err != nil {
		return nil, fmt.Errorf("fetch match profiles: %w", err)
	}
	return &profile.Profiles{Items: items}, nil
}

// InsertStartup writes one contributed listing row.
func (c *Client) InsertStartup(ctx context.Context, s *listing.Startup) error {
	if err := c.postJSON(ctx, tableStartups, []*listing.Startup{s}); err != nil {
		return fmt.Errorf("insert startup: %w", err)
	}
	return nil
}

type queueRow struct {
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// QueueURLs reads the persisted scrape-target URLs for one queue type.
func (c *Client) QueueURLs(ctx context.Context, qtype urlqueue.Type) ([]string, error) {
	table, err := queueTable(qtype)
	if err != nil {
		return nil, err
	}

	var rows []queueRow
	if err := c.getJSON(ctx, table, selectAll(), &rows); err != nil {
		return nil, fmt.Errorf("fetch %s queue: %w", qtype, err)
	}

	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		urls = append(urls, row.URL)
	}
	return urls, nil
}

// InsertQueueURLs persists net-new scrape-target URLs for one queue type.
func (c *Client) InsertQueueURLs(ctx context.Context, qtype urlqueue.Type, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	table, err := queueTable(qtype)
	if err != nil {
		return err
	}

	rows := make([]queueRow, 0, len(urls))
	now := time.Now().UTC()
	for _, u := range urls {
		rows = append(rows, queueRow{URL: u, CreatedAt: now})
	}

	if err := c.postJSON(ctx, table, rows); err != nil {
		return fmt.Errorf("insert into %s queue: %w", qtype, err)
	}
	return nil
}

func queueTable(qtype urlqueue.Type) (string, error) {
	switch qtype {
	case urlqueue.TypeStartup:
		return tableStartupURLs, nil
	case urlqueue.TypeVC:
		return tableVCURLs, nil
	default:
		return "", fmt.Errorf("unknown queue type: %s", qtype)
	}
}
