package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "credit-score-client/internal/common/errors"
	"credit-score-client/internal/common/logger"
	"credit-score-client/internal/common/observability"
	"credit-score-client/internal/models"
	"credit-score-client/internal/scoring"
)

const surfaceHTTP = "http"

// Scorer is the single-submission operation behind POST /score.
type Scorer interface {
	Score(ctx context.Context, raw models.RawInput) (*models.ResultView, error)
}

type ScoreHandler struct {
	scorer Scorer
	obs    *observability.Observability
	logger logger.Logger
}

func NewScoreHandler(scorer Scorer, obs *observability.Observability, log logger.Logger) *ScoreHandler {
	return &ScoreHandler{scorer: scorer, obs: obs, logger: log}
}

// Form serves the field descriptor so clients can draw the form.
func (h *ScoreHandler) Form(c *gin.Context) {
	Success(c, models.ScoreForm())
}

// Score binds and range-checks the form values, then runs one submission.
// Input problems answer 400, scoring API problems 502. Nothing is retried.
func (h *ScoreHandler) Score(c *gin.Context) {
	ctx := c.Request.Context()
	start := time.Now()

	var raw models.RawInput
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.presentBindError(c, err)
		h.obs.RecordSubmission(ctx, surfaceHTTP, string(apperrors.ErrCodeInvalidFeatureInput), time.Since(start))
		return
	}

	view, err := h.scorer.Score(ctx, raw)
	if err != nil {
		code := h.presentError(c, err)
		h.obs.RecordSubmission(ctx, surfaceHTTP, string(code), time.Since(start))
		return
	}

	h.obs.RecordSubmission(ctx, surfaceHTTP, "ok", time.Since(start))
	Success(c, view)
}

func (h *ScoreHandler) presentBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		ErrorWithDetails(c, http.StatusBadRequest, string(apperrors.ErrCodeInvalidFeatureInput),
			"feature input is invalid", detailsOf(scoring.DescribeValidation(verrs)))
		return
	}
	Error(c, http.StatusBadRequest, string(apperrors.ErrCodeInvalidFeatureInput),
		"request body is not a valid score form: "+err.Error())
}

// presentError writes the reply for a failed submission and returns the
// code it was classified under.
func (h *ScoreHandler) presentError(c *gin.Context, err error) apperrors.ErrorCode {
	stdErr := apperrors.Normalize(err)

	switch {
	case apperrors.IsInput(stdErr):
		fields, _ := stdErr.Metadata["fields"].([]scoring.FieldError)
		ErrorWithDetails(c, http.StatusBadRequest, string(stdErr.Code), stdErr.UserMessage(), detailsOf(fields))
	case apperrors.IsTransport(stdErr):
		Error(c, http.StatusBadGateway, string(stdErr.Code), stdErr.UserMessage())
	default:
		h.logger.Error("unexpected scoring failure", map[string]interface{}{
			"error": err.Error(),
		})
		Error(c, http.StatusInternalServerError, string(stdErr.Code), "internal error")
	}
	return stdErr.Code
}
