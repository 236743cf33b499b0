package handlers

import (
	"errors"
	"net/http"

	"linkfeed/internal/common"

	"github.com/gin-gonic/gin"
)

// statusFor maps the common error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrMissingToken),
		errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides driver details behind the sentinel text.
func publicMessage(err error, status int) string {
	switch status {
	case http.StatusServiceUnavailable:
		return common.ErrStoreUnavailable.Error()
	case http.StatusInternalServerError:
		return "internal error"
	default:
		return err.Error()
	}
}

// respondError logs err under logKey and writes {"error": msg}.
// Client mistakes log at info, server failures at error.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	status := statusFor(err)
	fields := append([]interface{}{"err", err, "status", status}, kv...)
	if status >= http.StatusInternalServerError {
		h.log.Errorw(logKey, fields...)
	} else {
		h.log.Infow(logKey, fields...)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": publicMessage(err, status)})
}

func (h *Handler) badRequest(c *gin.Context, logKey string, err error) {
	h.log.Infow(logKey, "err", err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
