// Package server exposes the score form over HTTP with gin.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"credit-score-client/internal/common/logger"
	"credit-score-client/internal/common/observability"
	"credit-score-client/internal/scoring"
)

type Dependencies struct {
	ServiceName   string
	Scorer        Scorer
	Observability *observability.Observability
	Logger        logger.Logger
}

var configureBinding sync.Once

// NewRouter wires the health, metrics and /api/v1 routes.
func NewRouter(deps Dependencies) *gin.Engine {
	configureBinding.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			scoring.ConfigureValidator(v)
		}
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(deps.ServiceName))
	r.Use(requestLogging(deps.Logger, "/health", "/metrics"))

	r.GET("/health", handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := NewScoreHandler(deps.Scorer, deps.Observability, deps.Logger)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/form", h.Form)
		v1.POST("/score", h.Score)
	}

	return r
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
