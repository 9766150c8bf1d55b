package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Base carries the envelope fields shared by every response body.
type Base struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
}

type APIResponse[T any] struct {
	Base
	Data  T           `json:"data,omitempty"`
	Meta  interface{} `json:"meta,omitempty"`
	Error interface{} `json:"error,omitempty"`
}

// NewBase fills the envelope for the current request.
func NewBase(ctx *gin.Context, status int, success bool, message string) Base {
	return Base{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   success,
		Message:   message,
	}
}

// Success writes a successful envelope with data.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Base: NewBase(ctx, status, true, message),
		Data: data,
		Meta: meta,
	})
}

// Error writes a failed envelope. err is omitted when nil.
func Error(ctx *gin.Context, status int, message string, err interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse[any]{
		Base:  NewBase(ctx, status, false, message),
		Error: err,
	})
}

// Abort writes a failed envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, err interface{}) {
	Error(ctx, status, message, err)
	ctx.Abort()
}
