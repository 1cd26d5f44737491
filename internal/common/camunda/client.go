package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"card-application-workers/internal/common/config"
	"card-application-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Client wraps the Zeebe gRPC client with connection retry and a health probe.
type Client struct {
	client zbc.Client
	config *ClientConfig
}

// ClientConfig holds configuration for the Camunda/Zeebe client.
type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	RequestTimeout         time.Duration
	RetryConfig            *RetryConfig
}

// RetryConfig defines retry behavior for transient failures.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryConfig is used when none is given.
var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 5,
	BaseDelay:  1 * time.Second,
	MaxDelay:   30 * time.Second,
}

// ClientConfigFrom maps the camunda config section.
func ClientConfigFrom(cfg config.CamundaConfig) *ClientConfig {
	return &ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: cfg.UsePlaintext,
		RequestTimeout:         config.GetDuration(cfg.RequestTimeout),
		RetryConfig: &RetryConfig{
			MaxRetries: cfg.ConnectRetries,
			BaseDelay:  config.GetDuration(cfg.ConnectBackoff),
			MaxDelay:   DefaultRetryConfig.MaxDelay,
		},
	}
}

// Connect creates the Zeebe client and waits until the gateway answers a topology request,
// retrying transient failures with exponential backoff.
func Connect(ctx context.Context, cfg *ClientConfig, log logger.Logger) (*Client, error) {
	if cfg.RetryConfig == nil {
		cfg.RetryConfig = DefaultRetryConfig
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{client: zeebeClient, config: cfg}
	err = retryWithBackoff(ctx, cfg.RetryConfig, log, "zeebe topology", func(ctx context.Context) error {
		return c.HealthCheck(ctx)
	})
	if err != nil {
		_ = zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.GatewayAddress, err)
	}
	return c, nil
}

// GetClient returns the raw Zeebe client.
func (c *Client) GetClient() zbc.Client {
	return c.client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck performs a topology request against the gateway.
func (c *Client) HealthCheck(ctx context.Context) error {
	timeout := c.config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// retryWithBackoff runs op until it succeeds, fails with a non-transient error, or the
// attempts run out. The delay doubles per attempt up to MaxDelay.
func retryWithBackoff(ctx context.Context, rc *RetryConfig, log logger.Logger, operationName string, op func(context.Context) error) error {
	attempts := rc.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	delay := rc.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if !isRetryableZeebeError(err) || attempt == attempts {
			break
		}

		log.Warn("operation failed, retrying", map[string]interface{}{
			"operation":   operationName,
			"attempt":     attempt,
			"maxRetries":  attempts,
			"nextRetryIn": delay.String(),
			"error":       err,
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled after %d attempts: %w", operationName, attempt, ctx.Err())
		}

		delay *= 2
		if rc.MaxDelay > 0 && delay > rc.MaxDelay {
			delay = rc.MaxDelay
		}
	}
	return fmt.Errorf("%s failed: %w", operationName, err)
}

// isRetryableZeebeError checks if the error is transient and should be retried.
func isRetryableZeebeError(err error) bool {
	msg := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"unavailable",
		"unreachable",
		"broken pipe",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
