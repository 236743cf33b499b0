package handlers

import (
	"time"

	"linkfeed/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	ctxUserID       = "userId"
)

// requestLogger tags every request with an id and logs its outcome.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Header(requestIDHeader, reqID)

	c.Next()

	fields := []interface{}{
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	}
	if uid, ok := c.Get(ctxUserID); ok {
		fields = append(fields, "user_id", uid)
	}
	h.log.Infow("http_request", fields...)
}

// sessionMiddleware resolves the Authorization header. Requests without the
// header continue anonymously; a malformed or invalid header is rejected.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	values, present := c.Request.Header["Authorization"]
	header := ""
	if present && len(values) > 0 {
		header = values[0]
	}

	sess, err := service.ResolveSession(service.TokenVerifierFunc(h.services.ParseToken), header, present)
	if err != nil {
		h.respondError(c, err, "session_rejected")
		return
	}
	if sess.Authenticated {
		c.Set(ctxUserID, sess.UserID)
		c.Request = c.Request.WithContext(service.WithUserID(c.Request.Context(), sess.UserID))
	}
	c.Next()
}
