package scoring

import (
	"credit-score-client/internal/common/config"
	"credit-score-client/internal/common/logger"
)

// NewFromConfig resolves the scoring credentials from src and builds a
// ready Scorer. A missing or invalid credential is returned as a
// configuration error and nothing is sent.
func NewFromConfig(cfg *config.Config, src config.SecretSource, log logger.Logger) (*Scorer, error) {
	creds, err := config.LoadCredentials(src)
	if err != nil {
		return nil, err
	}

	client := NewClient(creds, ClientConfig{
		Timeout:      config.GetDuration(cfg.Scoring.Timeout),
		MaxBodyBytes: cfg.Scoring.MaxBodyBytes,
	}, log)

	log.Info("scoring client configured", map[string]interface{}{
		"endpointHost": hostOf(creds.Endpoint),
		"timeoutMs":    cfg.Scoring.Timeout,
	})
	return NewScorer(client, log), nil
}
