package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venturemap/venturemap/internal/urlqueue"
)

// Notifier fires the scrape-trigger webhook to the external automation
// service. The request is fire-and-forget: the response body is discarded
// and the caller treats any returned error as a soft warning, never as a
// failure of the persist that preceded it.
type Notifier struct {
	logger        *zap.Logger
	HTTPClient    *http.Client
	endpoints     map[urlqueue.Type]string
	triggeredFrom string
	userID        string
}

type payload struct {
	URLs          []string  `json:"urls"`
	Timestamp     time.Time `json:"timestamp"`
	TriggeredFrom string    `json:"triggeredFrom"`
	UserID        string    `json:"userId"`
	TotalURLs     int       `json:"totalUrls"`
}

func New(logger *zap.Logger, endpoints map[urlqueue.Type]string, triggeredFrom, userID string) *Notifier {
	if triggeredFrom == "" {
		triggeredFrom = "venturemap"
	}
	if userID == "" {
		userID = uuid.NewString()
	}

	return &Notifier{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		endpoints:     endpoints,
		triggeredFrom: triggeredFrom,
		userID:        userID,
	}
}

// Notify posts the queue snapshot to the endpoint configured for the queue
// type. The response is drained and dropped without validation.
func (n *Notifier) Notify(ctx context.Context, qtype urlqueue.Type, urls []string) error {
	endpoint, ok := n.endpoints[qtype]
	if !ok || endpoint == "" {
		return fmt.Errorf("no webhook endpoint configured for %s queue", qtype)
	}

	body, err := json.Marshal(payload{
		URLs:          urls,
		Timestamp:     time.Now().UTC(),
		TriggeredFrom: n.triggeredFrom,
		UserID:        n.userID,
		TotalURLs:     len(urls),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	n.logger.Debug("firing scrape trigger",
		zap.String("queue_type", string(qtype)),
		zap.String("endpoint", endpoint),
		zap.Int("total_urls", len(urls)),
	)

	resp, err := n.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver scrape trigger: %w", err)
	}
	defer resp.Body.Close()

	// Response content is intentionally ignored; drain so the connection
	// can be reused.
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	return nil
}
