// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - Counter（计数器）：只增不减的累计值，如HTTP请求总数、借书总数
// - Gauge（仪表盘）：可增可减的瞬时值，如正在处理的请求数
// - Histogram（直方图）：观测值的分布，如HTTP请求耗时的P50/P90/P99
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// 业务代码中：
//
//	metrics.IncCounter(metrics.LoansBorrowedTotal)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/loans）、status（200/409）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅业务指标

	// LoansBorrowedTotal 借书成功总数（Counter）
	LoansBorrowedTotal prometheus.Counter

	// LoansRejectedTotal 借书被守卫规则拒绝总数（Counter）
	// 包括：用户非ACTIVE、图书已被借出
	LoansRejectedTotal prometheus.Counter

	// LoansReturnedTotal 还书总数（Counter）
	// 标签：result（RETURNED/OVERDUE），区分按时归还与逾期归还
	LoansReturnedTotal *prometheus.CounterVec

	// ReviewsCreatedTotal 书评创建总数（Counter）
	ReviewsCreatedTotal prometheus.Counter
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. 避免高基数标签：不要用user_id/book_id做标签，用状态等有限值
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 借阅业务指标
	LoansBorrowedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_borrowed_total",
			Help: "借书成功总数",
		},
	)

	LoansRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_rejected_total",
			Help: "借书被业务规则拒绝总数",
		},
	)

	LoansReturnedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "还书总数",
		},
		[]string{"result"}, // RETURNED=按时归还, OVERDUE=逾期归还
	)

	ReviewsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_created_total",
			Help: "书评创建总数",
		},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
