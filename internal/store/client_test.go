package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/venturemap/venturemap/internal/urlqueue"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(zap.NewNop(), server.URL, "test-key"), server
}

func TestStartupsFetchesAndDecodes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/startups" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "test-key" {
			t.Errorf("missing apikey header")
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer header")
		}
		if got := r.URL.Query().Get("select"); got != "*" {
			t.Errorf("unexpected select param %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "1", "name": "MediScan", "sector": "Healthcare"}]`))
	})

	startups, err := client.Startups(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if startups.Len() != 1 || startups.Items[0].Name != "MediScan" {
		t.Fatalf("unexpected result: %+v", startups)
	}
}

func TestMatchProfilesFiltersByType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "eq.vc" {
			t.Errorf("unexpected type filter %q", got)
		}
		w.Write([]byte(`[{"id": "p1", "type": "vc", "name": "Acme Capital"}]`))
	})

	profiles, err := client.MatchProfiles(context.Background(), "vc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profiles.Len() != 1 || profiles.Items[0].Name != "Acme Capital" {
		t.Fatalf("unexpected result: %+v", profiles)
	}
}

func TestQueueURLsPerType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/vc_urls" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"url": "https://a.com"}, {"url": "https://b.com"}]`))
	})

	urls, err := client.QueueURLs(context.Background(), urlqueue.TypeVC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://a.com" {
		t.Fatalf("unexpected urls: %v", urls)
	}
}

func TestInsertQueueURLs(t *testing.T) {
	var rows []map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/rest/v1/startup_urls" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})

	err := client.InsertQueueURLs(context.Background(), urlqueue.TypeStartup, []string{"https://a.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0]["url"] != "https://a.com" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if rows[0]["created_at"] == nil {
		t.Fatal("expected created_at on inserted row")
	}
}

func TestInsertQueueURLsEmptyIsNoop(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
	})

	if err := client.InsertQueueURLs(context.Background(), urlqueue.TypeStartup, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatal("no request expected for empty insert")
	}
}

func TestBadStatusSurfacesAsError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := client.Startups(context.Background()); err == nil {
		t.Fatal("expected error for bad status")
	}
}

func TestUnknownQueueType(t *testing.T) {
	client := New(zap.NewNop(), "http://unused", "k")

	if _, err := client.QueueURLs(context.Background(), urlqueue.Type("bank")); err == nil {
		t.Fatal("expected error for unknown queue type")
	}
}
