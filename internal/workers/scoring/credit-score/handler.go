package creditscore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"credit-score-client/internal/common/errors"
	"credit-score-client/internal/common/logger"
	"credit-score-client/internal/common/metrics"
	"credit-score-client/internal/common/observability"
	"credit-score-client/internal/models"
	"credit-score-client/internal/scoring"
)

const (
	TaskType      = "credit-score"
	surfaceWorker = "worker"
)

type Scorer interface {
	Score(ctx context.Context, raw models.RawInput) (*models.ResultView, error)
}

type Handler struct {
	config     *Config
	scorer     Scorer
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, scorer Scorer, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		scorer:     scorer,
		obs:        obs,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()
	start := time.Now()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, errors.NewInvalidFeatureInputError("parse job variables: "+err.Error()), start)
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err, start)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordSubmission(ctx, surfaceWorker, "ok", time.Since(start))
}

// Execute scores one form. Range violations are reported before the
// scoring API is contacted.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := scoring.ValidateInput(input.Form); err != nil {
		return nil, err
	}

	view, err := h.scorer.Score(ctx, input.Form)
	if err != nil {
		return nil, err
	}

	return &Output{
		RequestID:    input.RequestID,
		CreditTier:   view.Tier,
		CreditResult: view,
	}, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	code := errors.Normalize(err).Code
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
	h.obs.RecordSubmission(ctx, surfaceWorker, string(code), time.Since(start))
	// job commands outlive the scoring deadline
	h.errHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err.Error()})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err.Error()})
	}
}
