package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapWrapper_RedactsCredentials(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.With(map[string]interface{}{"x-api-key": "s3cr3t"}).Info("calling scoring API", map[string]interface{}{
		"apiKey":   "s3cr3t",
		"endpoint": "https://scoring.example.com/predict",
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, redacted, fields["apiKey"])
		assert.Equal(t, redacted, fields["x-api-key"])
		assert.Equal(t, "https://scoring.example.com/predict", fields["endpoint"])
	}
}

func TestIsSensitive(t *testing.T) {
	assert.True(t, IsSensitive("API_KEY"))
	assert.True(t, IsSensitive("Authorization"))
	assert.False(t, IsSensitive("endpoint"))
}

func TestNew_FallsBackToInfo(t *testing.T) {
	l := New("bogus", "json")
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
