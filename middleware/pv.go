package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"travelshare/utils"
)

// PVKeyPrefix prefixes the per-day page view counters in redis.
const PVKeyPrefix = "pv:daily:"

// PageViewRecorder counts successful GET requests per day in redis. The
// counter feeds the daily-active figure on the stats endpoint and expires
// after two days. Best-effort: a missing redis just skips the count.
func PageViewRecorder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}
		path := c.Request.URL.Path
		if path == "/health" || strings.Contains(path, "/stats") || strings.HasPrefix(path, "/static/") {
			return
		}

		rc := utils.GetRedis()
		if rc == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := PVKeyPrefix + time.Now().Format("2006-01-02")
		if n, err := rc.Incr(ctx, key).Result(); err == nil && n == 1 {
			_ = rc.Expire(ctx, key, 48*time.Hour).Err()
		}
	}
}
