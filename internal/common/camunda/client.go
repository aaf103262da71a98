// Package camunda connects the scoring workers to a Zeebe gateway.
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"credit-score-client/internal/common/config"
	"credit-score-client/internal/common/logger"
)

// ConnectConfig controls how hard Connect tries before giving up on the
// gateway. It never applies to scoring calls.
type ConnectConfig struct {
	GatewayAddress    string
	ConnectionTimeout time.Duration
	MaxAttempts       int
	InitialDelay      time.Duration
}

// ConnectConfigFrom derives connection settings from the camunda section.
func ConnectConfigFrom(cfg config.CamundaConfig) ConnectConfig {
	return ConnectConfig{
		GatewayAddress:    cfg.BrokerAddress,
		ConnectionTimeout: config.GetDuration(cfg.RequestTimeout),
		MaxAttempts:       10,
		InitialDelay:      2 * time.Second,
	}
}

// Connect opens a plaintext Zeebe client and waits until the gateway answers
// a topology request, backing off exponentially between attempts.
func Connect(ctx context.Context, cfg ConnectConfig, log logger.Logger) (zbc.Client, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.ConnectionTimeout <= 0 {
		cfg.ConnectionTimeout = 10 * time.Second
	}

	var lastErr error
	delay := cfg.InitialDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		client, err := dial(ctx, cfg)
		if err == nil {
			return client, nil
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}
		log.Warn("zeebe gateway not ready, retrying", map[string]interface{}{
			"gateway":     cfg.GatewayAddress,
			"attempt":     attempt,
			"maxAttempts": cfg.MaxAttempts,
			"nextRetryIn": delay.String(),
			"error":       err.Error(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("connect to zeebe at %s: %w", cfg.GatewayAddress, ctx.Err())
		}
		delay *= 2
	}

	return nil, fmt.Errorf("connect to zeebe at %s after %d attempts: %w", cfg.GatewayAddress, cfg.MaxAttempts, lastErr)
}

func dial(ctx context.Context, cfg ConnectConfig) (zbc.Client, error) {
	client, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	if err := HealthCheck(ctx, client, cfg.ConnectionTimeout); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// HealthCheck performs a topology request against the gateway.
func HealthCheck(ctx context.Context, client zbc.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := client.NewTopologyCommand().Send(ctx); err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}
