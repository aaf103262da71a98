package scoring

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "credit-score-client/internal/common/errors"
	"credit-score-client/internal/common/logger"
	"credit-score-client/internal/models"
)

type mockSubmitter struct {
	SubmitFunc func(ctx context.Context, fs models.FeatureSet) (*models.Prediction, error)
	calls      int
	last       models.FeatureSet
}

func (m *mockSubmitter) Submit(ctx context.Context, fs models.FeatureSet) (*models.Prediction, error) {
	m.calls++
	m.last = fs
	return m.SubmitFunc(ctx, fs)
}

func TestScorer_Score_Success(t *testing.T) {
	sub := &mockSubmitter{SubmitFunc: func(ctx context.Context, fs models.FeatureSet) (*models.Prediction, error) {
		return &models.Prediction{
			Value: json.RawMessage(`1`),
			Proba: json.RawMessage(`[0.1,0.2,0.7]`),
		}, nil
	}}
	scorer := NewScorer(sub, logger.NewTestLogger(t))

	raw := createTestRawInput()
	raw.MissedPayment = models.ChoiceYes
	raw.Loans = []string{"Home_Equity_Loan"}

	view, err := scorer.Score(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, view)

	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, models.FlagYes, sub.last.MissedPayment)
	assert.Equal(t, models.FlagYes, sub.last.HomeEquityLoan)

	_, parseErr := uuid.Parse(view.SubmissionID)
	assert.NoError(t, parseErr)
	assert.Equal(t, models.TierGood, view.Tier)
	assert.Equal(t, "SCORE: GOOD - risco baixo de inadimplência.", view.Message)
	require.Len(t, view.Confidence, 3)
	assert.Equal(t, "70.0%", view.Confidence[2].Display)
	assert.Equal(t, sub.last, view.Payload.Data)
}

func TestScorer_Score_InputErrorSkipsSubmit(t *testing.T) {
	sub := &mockSubmitter{SubmitFunc: func(ctx context.Context, fs models.FeatureSet) (*models.Prediction, error) {
		t.Fatal("submit must not be called")
		return nil, nil
	}}
	scorer := NewScorer(sub, logger.NewTestLogger(t))

	raw := createTestRawInput()
	raw.Loans = []string{"Boat_Loan"}

	view, err := scorer.Score(context.Background(), raw)
	assert.Nil(t, view)
	requireCode(t, err, apperrors.ErrCodeUnknownLoanType)
	assert.Equal(t, 0, sub.calls)
}

func TestScorer_Score_TransportErrorIsSingleAttempt(t *testing.T) {
	sub := &mockSubmitter{SubmitFunc: func(ctx context.Context, fs models.FeatureSet) (*models.Prediction, error) {
		return nil, apperrors.NewTransportError(assert.AnError)
	}}
	scorer := NewScorer(sub, logger.NewTestLogger(t))

	view, err := scorer.Score(context.Background(), createTestRawInput())
	assert.Nil(t, view)
	requireCode(t, err, apperrors.ErrCodeScoringTransportFailed)
	assert.Equal(t, 1, sub.calls)
}

func TestScorer_Score_IndependentSubmissions(t *testing.T) {
	sub := &mockSubmitter{SubmitFunc: func(ctx context.Context, fs models.FeatureSet) (*models.Prediction, error) {
		return &models.Prediction{Value: json.RawMessage(`0`)}, nil
	}}
	scorer := NewScorer(sub, logger.NewNoOpLogger())

	first, err := scorer.Score(context.Background(), createTestRawInput())
	require.NoError(t, err)
	second, err := scorer.Score(context.Background(), createTestRawInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.SubmissionID, second.SubmissionID)
	assert.Equal(t, models.TierRegular, second.Tier)
	assert.Nil(t, second.Confidence)
}
