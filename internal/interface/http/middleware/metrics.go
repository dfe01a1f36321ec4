package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/metrics"
)

// Metrics HTTP指标采集中间件
// 设计说明:
// 1. 记录请求总数(method/path/status三个维度)
// 2. 记录请求耗时分布(Histogram)
// 3. 记录正在处理的请求数(Gauge)
// 4. path使用路由模板(c.FullPath())而非原始URL,
//    避免/books/1、/books/2把指标基数打爆
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		path := c.FullPath()
		if path == "" {
			// 未匹配到路由(404),统一归并
			path = "unmatched"
		}

		labels := map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, labels)

		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
