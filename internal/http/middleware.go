package http

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"simrig-shop/internal/repository/sqlite"
)

const (
	requestIDHeader = "X-Request-ID"
	// longest form uuid.Parse accepts: "urn:uuid:" plus 36 characters
	maxRequestIDLen = 45
)

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestID(c.GetHeader(requestIDHeader))
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"uri":        c.Request.RequestURI,
			"route":      c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
		})
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last()).Warn("request failed")
			return
		}
		entry.Debug("request handled")
	}
}

// requestID keeps a client supplied id only when it is a UUID, in canonical form.
func requestID(header string) string {
	if header != "" && len(header) <= maxRequestIDLen {
		if id, err := uuid.Parse(header); err == nil {
			return id.String()
		}
	}
	return uuid.NewString()
}

// connectionScope gives each request its own lazily acquired database
// connection and returns it once the handler chain finishes.
func connectionScope(db *sql.DB, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, lease := sqlite.WithLease(c.Request.Context(), db)
		c.Request = c.Request.WithContext(ctx)
		defer func() {
			if err := lease.Release(); err != nil {
				logger.WithError(err).Warn("release db connection")
			}
		}()
		c.Next()
	}
}
