package scoring

import (
	"context"

	"github.com/google/uuid"

	"credit-score-client/internal/common/logger"
	"credit-score-client/internal/common/metrics"
	"credit-score-client/internal/models"
)

// Submitter sends one FeatureSet to the scoring API.
type Submitter interface {
	Submit(ctx context.Context, fs models.FeatureSet) (*models.Prediction, error)
}

// Scorer runs one form submission end to end: normalize, submit once and
// render. Both the HTTP surface and the workflow worker go through it.
type Scorer struct {
	client Submitter
	logger logger.Logger
}

func NewScorer(client Submitter, log logger.Logger) *Scorer {
	return &Scorer{client: client, logger: log}
}

// Score expects raw values that already passed the range checks of the
// calling surface. The returned view and error are never both non-nil.
func (s *Scorer) Score(ctx context.Context, raw models.RawInput) (*models.ResultView, error) {
	fs, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	log := s.logger.With(map[string]interface{}{"submissionId": id})
	log.Debug("features normalized", map[string]interface{}{
		"selectedLoans": fs.SelectedLoans(),
	})

	pred, err := s.client.Submit(ctx, fs)
	if err != nil {
		return nil, err
	}

	view := Render(id, fs, pred)
	metrics.ScoringTiers.WithLabelValues(string(view.Tier)).Inc()
	log.Info("submission scored", map[string]interface{}{
		"tier":          string(view.Tier),
		"hasConfidence": len(view.Confidence) > 0,
	})
	return view, nil
}
