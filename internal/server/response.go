package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"credit-score-client/internal/scoring"
)

// Response is the envelope of every /api/v1 reply.
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

type Meta struct {
	Code      int           `json:"code"`
	Message   string        `json:"message"`
	ErrorCode string        `json:"errorCode,omitempty"`
	Details   []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail points at one rejected input field.
type ErrorDetail struct {
	Path string `json:"path"`
	Info string `json:"info"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Meta: Meta{Code: http.StatusOK, Message: "OK"},
		Data: data,
	})
}

func Error(c *gin.Context, httpCode int, errorCode, message string) {
	ErrorWithDetails(c, httpCode, errorCode, message, nil)
}

func ErrorWithDetails(c *gin.Context, httpCode int, errorCode, message string, details []ErrorDetail) {
	c.JSON(httpCode, Response{
		Meta: Meta{
			Code:      httpCode,
			Message:   message,
			ErrorCode: errorCode,
			Details:   details,
		},
	})
}

func detailsOf(fields []scoring.FieldError) []ErrorDetail {
	if len(fields) == 0 {
		return nil
	}
	out := make([]ErrorDetail, len(fields))
	for i, f := range fields {
		out[i] = ErrorDetail{Path: f.Field, Info: f.Message}
	}
	return out
}
