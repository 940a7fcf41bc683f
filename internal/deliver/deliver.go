/*
Package deliver posts run payloads to the downstream automation webhook.
*/
package deliver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shanehull/birthdaybot/internal/types"
)

const (
	UserAgent      = "HermessApp-Birthday-Bot/1.0"
	DefaultTimeout = 30 * time.Second
	maxBodyLog     = 4096
)

var ErrDelivery = errors.New("delivery failed")

// DeliveryError describes a failed POST: either a transport error or a non-200 status.
type DeliveryError struct {
	StatusCode int
	Body       string
	Timeout    bool
	Err        error
}

func (e *DeliveryError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("delivery failed: timeout: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("delivery failed: %v", e.Err)
	default:
		return fmt.Sprintf("delivery failed: webhook responded %d: %s", e.StatusCode, e.Body)
	}
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) Is(target error) bool { return target == ErrDelivery }

type requestIDKey struct{}

// WithRequestID attaches an id sent as X-Request-ID on delivery.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

type Client struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

// NewClient returns a webhook client. A zero timeout uses DefaultTimeout.
func NewClient(url string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:    url,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Send POSTs the payload as JSON. Only HTTP 200 counts as success.
func (c *Client) Send(ctx context.Context, p types.RunPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return &DeliveryError{Err: fmt.Errorf("failed to encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Err: fmt.Errorf("failed to build request for %s: %w", c.url, err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	c.logger.Info("Sending payload to webhook",
		zap.String("url", c.url),
		zap.Int("records", p.Metadata.RecordCount))

	resp, err := c.http.Do(req)
	if err != nil {
		derr := &DeliveryError{Err: err, Timeout: isTimeout(err)}
		c.logger.Error("Webhook request failed", zap.Bool("timeout", derr.Timeout), zap.Error(err))
		return derr
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close webhook response body", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyLog))
		derr := &DeliveryError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		c.logger.Error("Webhook rejected payload",
			zap.Int("status", resp.StatusCode),
			zap.String("response", derr.Body))
		return derr
	}

	c.logger.Info("Payload delivered",
		zap.Int("records", p.Metadata.RecordCount),
		zap.String("date_format", p.Metadata.DateFormat),
		zap.Int("processing_year", p.Metadata.ProcessingYear))
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
