package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/defense-scheduler/internal/service"
)

// Metrics returns middleware that captures request metrics using the
// provided service. Requests routed through an /algorithms/:tag/... path
// additionally get tagged by algorithm strategy, so a bad request that
// never reaches orchestrator.Service.RunAlgorithm (unknown tag, invalid
// parameter body) still shows up labeled by tag instead of only the
// orchestrator-level success/failure counters service.ObserveAlgorithmRun
// already tracks.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, duration)

		if tag := c.Param("tag"); tag != "" {
			metricsSvc.ObserveAlgorithmRequest(tag, status)
		}
	}
}
