package urlqueue

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RemoteQueue is the slice of the listing store the persist step needs.
type RemoteQueue interface {
	QueueURLs(ctx context.Context, qtype Type) ([]string, error)
	InsertQueueURLs(ctx context.Context, qtype Type, urls []string) error
}

// Notifier fires the scrape-trigger webhook for a queue type. Delivery is
// best effort; the returned error is advisory.
type Notifier interface {
	Notify(ctx context.Context, qtype Type, urls []string) error
}

// PersistResult reports what the persist step did. Warning is set when the
// scrape trigger could not be delivered; the rows were still saved.
type PersistResult struct {
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
	Warning  string `json:"warning,omitempty"`
}

// Persist reads the remote queue, inserts only the URLs not already present
// and then triggers the scrape webhook. The read-diff-insert sequence is not
// atomic: a concurrent writer could race it. Acceptable for the single-admin
// usage this queue serves.
func Persist(ctx context.Context, store RemoteQueue, notifier Notifier, q *Queue, logger *zap.Logger) (*PersistResult, error) {
	existing, err := store.QueueURLs(ctx, q.Type())
	if err != nil {
		return nil, fmt.Errorf("read remote queue: %w", err)
	}

	known := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		known[u] = struct{}{}
	}

	var fresh []string
	for _, u := range q.URLs() {
		if _, ok := known[u]; ok {
			continue
		}
		fresh = append(fresh, u)
	}

	if len(fresh) > 0 {
		if err := store.InsertQueueURLs(ctx, q.Type(), fresh); err != nil {
			return nil, fmt.Errorf("insert urls: %w", err)
		}
	}

	result := &PersistResult{
		Inserted: len(fresh),
		Skipped:  q.Len() - len(fresh),
	}

	logger.Info("queue persisted",
		zap.String("queue_type", string(q.Type())),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)

	if notifier != nil {
		if err := notifier.Notify(ctx, q.Type(), q.URLs()); err != nil {
			result.Warning = fmt.Sprintf("scrape trigger not delivered: %s", err)
			logger.Warn("scrape trigger not delivered",
				zap.String("queue_type", string(q.Type())),
				zap.Error(err),
			)
		}
	}

	return result, nil
}
