package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/coursehub/internal/logger"
)

// RequestLogger пишет по строке на запрос
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.RequestURI(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		if uid := c.GetString(UserIDKey); uid != "" {
			kv = append(kv, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			log.Error("request failed", append(kv, "errors", c.Errors.String())...)
			return
		}
		log.Debug("request", kv...)
	}
}
