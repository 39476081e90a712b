package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dgnsrekt/etf-svix/internal/download"
	"github.com/dgnsrekt/etf-svix/internal/runner"
)

// Notifier reports the outcome of download and calc runs.
type Notifier interface {
	SendDownload(ctx context.Context, result *download.BatchResult, date string, duration time.Duration, err error) error
	SendReport(ctx context.Context, reports []runner.InstrumentReport, date string, duration time.Duration) error
}

// Client implements the ntfy notification client.
type Client struct {
	httpClient *http.Client
	config     *Config
	logger     *zap.Logger
}

// NewClient creates a new ntfy client.
func NewClient(cfg *Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
	}
}

// SendDownload posts a download summary. A batch that failed, or that
// recorded failed tasks, goes out at high priority.
func (c *Client) SendDownload(ctx context.Context, result *download.BatchResult, date string, duration time.Duration, err error) error {
	if !c.config.Enabled {
		return nil
	}

	if err != nil || result.Failed > 0 {
		title := fmt.Sprintf("Chain Download Failed: %s", date)
		return c.send(ctx, title, FormatFailureMessage(result, duration, err), c.config.Tags+",x", "high")
	}

	title := fmt.Sprintf("Chain Download Complete: %s", date)
	return c.send(ctx, title, FormatDownloadMessage(result, duration), c.config.Tags+",white_check_mark", c.config.Priority)
}

// SendReport posts the front-month SVIX of every instrument in a calc run.
func (c *Client) SendReport(ctx context.Context, reports []runner.InstrumentReport, date string, duration time.Duration) error {
	if !c.config.Enabled {
		return nil
	}

	title := fmt.Sprintf("SVIX: %s", date)
	return c.send(ctx, title, FormatReportMessage(reports, duration), c.config.Tags, c.config.Priority)
}

func (c *Client) send(ctx context.Context, title, message, tags, priority string) error {
	url := fmt.Sprintf("%s/%s", strings.TrimSuffix(c.config.Server, "/"), c.config.Topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Title", title)
	req.Header.Set("Priority", priority)
	req.Header.Set("Tags", tags)

	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("failed to send notification", zap.Error(err))
		return fmt.Errorf("sending notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain response body to allow connection reuse
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("notification failed",
			zap.Int("status", resp.StatusCode),
			zap.String("url", url),
		)
		return fmt.Errorf("notification failed with status: %d", resp.StatusCode)
	}

	c.logger.Debug("notification sent", zap.String("title", title))
	return nil
}

// NoopNotifier is a no-op implementation for when notifications are disabled.
type NoopNotifier struct{}

func (n *NoopNotifier) SendDownload(_ context.Context, _ *download.BatchResult, _ string, _ time.Duration, _ error) error {
	return nil
}

func (n *NoopNotifier) SendReport(_ context.Context, _ []runner.InstrumentReport, _ string, _ time.Duration) error {
	return nil
}

// New creates the appropriate notifier based on config.
func New(cfg *Config, logger *zap.Logger) Notifier {
	if !cfg.Enabled {
		return &NoopNotifier{}
	}
	return NewClient(cfg, logger)
}
