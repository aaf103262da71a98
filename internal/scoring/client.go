package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"credit-score-client/internal/common/config"
	apperrors "credit-score-client/internal/common/errors"
	apphttp "credit-score-client/internal/common/http"
	"credit-score-client/internal/common/logger"
	"credit-score-client/internal/common/metrics"
	"credit-score-client/internal/models"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 1 << 20

	// status errors keep at most this much of the body for diagnostics
	maxErrorBodyExcerpt = 256
)

type ClientConfig struct {
	Timeout      time.Duration
	MaxBodyBytes int64
}

// Client performs single-attempt exchanges with the scoring API. It holds
// only read-only state and is safe for concurrent use.
type Client struct {
	creds  config.Credentials
	cfg    ClientConfig
	http   *apphttp.Client
	logger logger.Logger
}

func NewClient(creds config.Credentials, cfg ClientConfig, log logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Client{
		creds:  creds,
		cfg:    cfg,
		http:   apphttp.NewClient(cfg.Timeout),
		logger: log.With(map[string]interface{}{"endpointHost": hostOf(creds.Endpoint)}),
	}
}

// Submit sends one FeatureSet and returns the parsed prediction. On any
// failure it returns a nil prediction and a *errors.StandardError whose
// message can be shown to the user; it never retries.
func (c *Client) Submit(ctx context.Context, fs models.FeatureSet) (*models.Prediction, error) {
	start := time.Now()
	pred, err := c.submit(ctx, fs)

	outcome := "ok"
	if err != nil {
		if code, ok := apperrors.CodeOf(err); ok {
			outcome = string(code)
		} else {
			outcome = "unknown"
		}
	}
	metrics.ScoringRequests.WithLabelValues(outcome).Inc()
	metrics.ScoringDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		c.logger.Warn("scoring call failed", map[string]interface{}{
			"error":      err.Error(),
			"durationMs": time.Since(start).Milliseconds(),
		})
		return nil, err
	}

	c.logger.Info("scoring call completed", map[string]interface{}{
		"prediction": string(pred.Value),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return pred, nil
}

func (c *Client) submit(ctx context.Context, fs models.FeatureSet) (*models.Prediction, error) {
	body, err := json.Marshal(models.RequestEnvelope{Data: fs})
	if err != nil {
		return nil, apperrors.NewInvalidFeatureSetError(err.Error())
	}

	result, err := envelopeSchema.ValidateJSON(body)
	if err != nil {
		return nil, apperrors.NewInvalidFeatureSetError(err.Error())
	}
	if !result.Valid {
		return nil, apperrors.NewInvalidFeatureSetError(strings.Join(result.GetErrorMessages(), "; "))
	}

	c.logger.Debug("submitting features", map[string]interface{}{"payload": string(body)})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.creds.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewTransportError(err)
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderAPIKey, c.creds.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, c.transportError(err)
	}
	if int64(len(raw)) > c.cfg.MaxBodyBytes {
		return nil, apperrors.NewMalformedResponseError(
			fmt.Sprintf("response body exceeds %d bytes", c.cfg.MaxBodyBytes))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewUnexpectedStatusError(resp.StatusCode, excerpt(raw))
	}

	return parsePrediction(raw)
}

// parsePrediction accepts a JSON object with a non-null "prediction". A null
// or missing "proba" is reported as absent.
func parsePrediction(raw []byte) (*models.Prediction, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, apperrors.NewMalformedResponseError("response is not a JSON object")
	}

	var pred models.Prediction
	if err := json.Unmarshal(trimmed, &pred); err != nil {
		return nil, apperrors.NewMalformedResponseError(err.Error())
	}
	if isNull(pred.Value) {
		return nil, apperrors.NewMalformedResponseError(`response has no "prediction" field`)
	}
	if isNull(pred.Proba) {
		pred.Proba = nil
	}
	return &pred, nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func (c *Client) transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewScoringTimeoutError(c.http.Timeout(), err)
	}
	return apperrors.NewTransportError(err)
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodyExcerpt {
		return s[:maxErrorBodyExcerpt] + "..."
	}
	return s
}

func hostOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	return u.Host
}
