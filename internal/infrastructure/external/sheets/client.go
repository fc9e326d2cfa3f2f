// Package sheets downloads the published timetable grids. Each weekday is
// one CSV export URL; the client fetches the raw text and hands it to the
// grid parser untouched.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/campus-hub/campus-schedule-hub/internal/domain/shared"
	"github.com/campus-hub/campus-schedule-hub/pkg/circuitbreaker"
	"github.com/campus-hub/campus-schedule-hub/pkg/logger"
	"github.com/campus-hub/campus-schedule-hub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the sheets client.
type ClientConfig struct {
	// DayURLs maps weekday names ("Monday", ...) to their CSV export URLs.
	DayURLs map[string]string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// MaxBodyBytes caps the downloaded grid size. Published grids are a
	// few hundred KB at most; anything bigger is a misconfigured URL.
	MaxBodyBytes int64

	// Logger for structured logging.
	Logger *logger.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(dayURLs map[string]string) ClientConfig {
	return ClientConfig{
		DayURLs:      dayURLs,
		Timeout:      30 * time.Second,
		MaxBodyBytes: 4 << 20,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client fetches raw day grids over HTTP. It implements
// timetable.GridSource.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker
	log        *logger.Logger
}

// NewClient creates a new sheets client.
func NewClient(config ClientConfig) *Client {
	log := config.Logger
	if log == nil {
		log = logger.Default()
	}
	log = log.With(logger.Component("sheets"))

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		retrier: retry.SheetsRetrier(
			// Anything download marks Permanent is filtered before this;
			// every other failure is worth another attempt.
			retry.WithRetryIf(func(error) bool { return true }),
			retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
				log.Warn("grid download retry",
					logger.Int("attempt", attempt),
					logger.Err(err),
				)
			}),
		),
		breaker: circuitbreaker.SheetsBreaker(func(name string, from, to circuitbreaker.State) {
			log.Warn("circuit breaker state change",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		}),
		log: log,
	}
}

// Days returns the weekdays the client has export URLs for, in teaching
// order.
func (c *Client) Days() []shared.Weekday {
	days := make([]shared.Weekday, 0, len(c.config.DayURLs))
	for name := range c.config.DayURLs {
		if day, ok := shared.ParseWeekday(name); ok {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Number() < days[j].Number()
	})
	return days
}

// FetchDay downloads one day's raw grid text.
func (c *Client) FetchDay(ctx context.Context, day shared.Weekday) (string, error) {
	url, ok := c.config.DayURLs[string(day)]
	if !ok || url == "" {
		return "", fmt.Errorf("sheets: no export URL for %s: %w", day, shared.ErrUnknownDay)
	}

	var grid string
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Do(ctx, func(ctx context.Context) error {
			var derr error
			grid, derr = c.download(ctx, url)
			return derr
		})
	})
	if err != nil {
		return "", err
	}

	return grid, nil
}

// download performs a single grid download.
func (c *Client) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "text/csv, text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", shared.ErrSheetTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", shared.ErrSheetUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to the body read
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", shared.ErrSheetUnavailable, resp.StatusCode)
	default:
		// 4xx means a bad or revoked export URL; retrying won't help.
		return "", retry.Permanent(fmt.Errorf("%w: status %d", shared.ErrSheetInvalidPayload, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", shared.ErrSheetUnavailable, err)
	}
	if len(body) == 0 {
		return "", retry.Permanent(shared.ErrSheetInvalidPayload)
	}

	return string(body), nil
}

// IsHealthy reports whether the breaker currently admits requests.
func (c *Client) IsHealthy() bool {
	return !c.breaker.IsOpen()
}
