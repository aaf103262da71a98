package creditscore

import (
	"time"

	"credit-score-client/internal/common/config"
)

type Config struct {
	// Timeout bounds one job, scoring call included.
	Timeout time.Duration
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{Timeout: timeout}
}
