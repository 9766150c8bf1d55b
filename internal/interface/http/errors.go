package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notegenius-api/internal/application"
	"github.com/oksasatya/notegenius-api/internal/interface/middleware"
	"github.com/oksasatya/notegenius-api/pkg/helpers"
	"github.com/oksasatya/notegenius-api/pkg/response"
	"github.com/oksasatya/notegenius-api/pkg/validation"
)

// Errors maps application errors onto HTTP responses.
type Errors struct {
	Logger logrus.FieldLogger
	// Dev exposes internal error detail in the response body.
	Dev bool
}

func statusFor(kind application.Kind) int {
	switch kind {
	case application.KindValidation:
		return http.StatusBadRequest
	case application.KindConflict:
		return http.StatusConflict
	case application.KindUnauthenticated:
		return http.StatusUnauthorized
	case application.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write responds with the status and client-safe message for err.
func (e Errors) Write(c *gin.Context, err error, fallback string) {
	kind := application.KindOf(err)
	status := statusFor(kind)
	msg := application.MessageOf(err, fallback)

	var detail interface{}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		helpers.LogError(e.Logger, msg, err, logrus.Fields{"request_id": c.GetString(middleware.CtxRequestIDKey)})
		if e.Dev {
			detail = err.Error()
		}
	}
	response.Error(c, status, msg, detail)
}

// Bind decodes the JSON body into dst. On failure it writes a 400 with msg and field details.
func (e Errors) Bind(c *gin.Context, dst any, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, msg, validation.ToDetails(err))
		return false
	}
	return true
}

// ID parses the :id path parameter. On failure it writes a 400.
func (e Errors) ID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid id", nil)
		return 0, false
	}
	return id, true
}
