package urlqueue

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type partitions URL ingestion: startup pages and VC/grant-program pages
// live in separate queues and trigger separate scrape workflows.
type Type string

const (
	TypeStartup Type = "startup"
	TypeVC      Type = "vc"
)

func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeStartup:
		return TypeStartup, nil
	case TypeVC:
		return TypeVC, nil
	default:
		return "", fmt.Errorf("unknown queue type: %q", s)
	}
}

// Distinguishable add-one rejections.
var (
	ErrEmptyURL  = errors.New("url is empty")
	ErrNotHTTP   = errors.New("url must start with http")
	ErrDuplicate = errors.New("url already in queue")
)

// Queue is the in-memory working set of candidate URLs for one queue type.
// Entries are only added or removed; persisted rows are never mutated.
type Queue struct {
	qtype Type
	urls  []string
}

func New(qtype Type) *Queue {
	return &Queue{qtype: qtype}
}

func (q *Queue) Type() Type { return q.qtype }

func (q *Queue) Len() int { return len(q.urls) }

// URLs returns a copy of the working set in insertion order.
func (q *Queue) URLs() []string {
	out := make([]string, len(q.urls))
	copy(out, q.urls)
	return out
}

// Add appends a single URL, rejecting empty strings, non-http strings and
// exact duplicates with distinct errors.
func (q *Queue) Add(raw string) error {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ErrEmptyURL
	}
	if !strings.HasPrefix(u, "http") {
		return ErrNotHTTP
	}
	if q.contains(u) {
		return ErrDuplicate
	}

	q.urls = append(q.urls, u)
	return nil
}

// AddBulk ingests newline-delimited text, silently dropping blank lines,
// non-http lines and duplicates. Returns the number of URLs added.
func (q *Queue) AddBulk(text string) int {
	added := 0
	for _, line := range strings.Split(text, "\n") {
		if err := q.Add(line); err == nil {
			added++
		}
	}
	return added
}

// AddCSV ingests tabular text: the header row is dropped and only the first
// comma-delimited column of each remaining line is considered. Returns the
// number of URLs added.
func (q *Queue) AddCSV(text string) int {
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return 0
	}

	added := 0
	for _, line := range lines[1:] {
		first, _, _ := strings.Cut(line, ",")
		if err := q.Add(first); err == nil {
			added++
		}
	}
	return added
}

// Remove deletes an exact URL from the working set. Returns whether a
// removal happened.
func (q *Queue) Remove(url string) bool {
	for i, u := range q.urls {
		if u == url {
			q.urls = append(q.urls[:i], q.urls[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) contains(url string) bool {
	for _, u := range q.urls {
		if u == url {
			return true
		}
	}
	return false
}

// ExportDoc is the downloadable JSON document for a queue snapshot.
type ExportDoc struct {
	URLs       []string  `json:"urls"`
	URLType    string    `json:"urlType"`
	ExportedAt time.Time `json:"exportedAt"`
}

// Export builds the export document and its suggested filename,
// e.g. "startup-urls-2026-08-31.json".
func (q *Queue) Export(now time.Time) (ExportDoc, string) {
	doc := ExportDoc{
		URLs:       q.URLs(),
		URLType:    string(q.qtype),
		ExportedAt: now,
	}
	filename := fmt.Sprintf("%s-urls-%s.json", q.qtype, now.Format("2006-01-02"))
	return doc, filename
}
