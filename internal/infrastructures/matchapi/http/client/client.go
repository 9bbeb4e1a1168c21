package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	derr "github.com/michaelvbend/ajax-scraper/internal/domain/errors"
	"github.com/michaelvbend/ajax-scraper/internal/domain/models"
	"github.com/michaelvbend/ajax-scraper/internal/infrastructures/matchapi/mappers"
	"go.uber.org/zap"
)

const maxLoggedBody = 512

// Client pushes the scraped match list to the match API.
type Client struct {
	log      *zap.Logger
	http     *resty.Client
	endpoint string
}

func NewClient(log *zap.Logger, endpoint, token string, timeout time.Duration) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if token = strings.TrimSpace(token); token != "" {
		httpClient.SetAuthToken(token)
	}
	instrument(httpClient, "ajax-scraper/matchapi")

	return &Client{
		log:      log,
		http:     httpClient,
		endpoint: endpoint,
	}
}

// Notify replaces the remote match list with payload. Only transport failures
// are returned; an unexpected status is logged and swallowed.
func (c *Client) Notify(ctx context.Context, payload models.NotificationPayload) error {
	const op = "matchapi.Notify"

	logger := c.log.With(
		zap.String("op", op),
		zap.String("endpoint", c.endpoint),
		zap.Int("matches", len(payload.Matches)),
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(mappers.ToReplaceMatchesRequest(payload)).
		Put(c.endpoint)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", op, err)
		}
		return fmt.Errorf("%s: %w: %v", op, derr.ErrNotifyTransport, err)
	}

	if resp.StatusCode() != http.StatusNoContent {
		logger.Error("match api rejected update",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", truncate(resp.String(), maxLoggedBody)),
		)
		return nil
	}

	logger.Info("match api updated", zap.Duration("duration", resp.Time()))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
