package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	// 初始化指标
	InitMetrics()

	// 验证所有指标已创建
	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if LoansBorrowedTotal == nil {
		t.Error("LoansBorrowedTotal未初始化")
	}
	if LoansReturnedTotal == nil {
		t.Error("LoansReturnedTotal未初始化")
	}

	// 重复调用不应panic（promauto重复注册会panic，靠initialized标记保护）
	InitMetrics()

	t.Log("✅ 所有指标初始化成功")
}

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	InitMetrics()

	// 初始值应为0
	initialValue := getCounterValue(t, LoansBorrowedTotal)
	if initialValue != 0 {
		t.Errorf("Counter初始值错误: expected=0, got=%f", initialValue)
	}

	// 递增3次
	IncCounter(LoansBorrowedTotal)
	IncCounter(LoansBorrowedTotal)
	IncCounter(LoansBorrowedTotal)

	// 验证值为3
	value := getCounterValue(t, LoansBorrowedTotal)
	if value != 3 {
		t.Errorf("Counter值错误: expected=3, got=%f", value)
	}

	t.Log("✅ Counter测试通过")
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	// 按归还结果分标签递增
	IncCounterVec(LoansReturnedTotal, map[string]string{"result": "RETURNED"})
	IncCounterVec(LoansReturnedTotal, map[string]string{"result": "OVERDUE"})
	IncCounterVec(LoansReturnedTotal, map[string]string{"result": "RETURNED"})

	// 验证按时归还的计数为2
	value := getCounterVecValue(t, LoansReturnedTotal, map[string]string{"result": "RETURNED"})
	if value != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", value)
	}

	// 逾期归还的计数为1
	value = getCounterVecValue(t, LoansReturnedTotal, map[string]string{"result": "OVERDUE"})
	if value != 1 {
		t.Errorf("CounterVec值错误: expected=1, got=%f", value)
	}

	t.Log("✅ CounterVec测试通过")
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	base := getGaugeValue(t, HTTPRequestsInProgress)

	// 递增
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	value := getGaugeValue(t, HTTPRequestsInProgress)
	if value != base+2 {
		t.Errorf("Gauge递增后值错误: expected=%f, got=%f", base+2, value)
	}

	// 递减
	DecGauge(HTTPRequestsInProgress)
	value = getGaugeValue(t, HTTPRequestsInProgress)
	if value != base+1 {
		t.Errorf("Gauge递减后值错误: expected=%f, got=%f", base+1, value)
	}

	DecGauge(HTTPRequestsInProgress)

	t.Log("✅ Gauge测试通过")
}

// TestHistogramVec 测试HistogramVec指标
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	// 记录不同路径的请求耗时
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/api/v1/books"}, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/api/v1/books"}, 0.1)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "POST", "path": "/api/v1/loans"}, 0.2)

	// 验证GET /api/v1/books的观测次数
	labels := map[string]string{"method": "GET", "path": "/api/v1/books"}
	count := getHistogramVecCount(t, HTTPRequestDuration, labels)
	if count != 2 {
		t.Errorf("HistogramVec观测次数错误: expected=2, got=%d", count)
	}

	t.Log("✅ HistogramVec测试通过")
}

// TestRealWorldScenario 真实场景：模拟HTTP请求处理
func TestRealWorldScenario(t *testing.T) {
	InitMetrics()

	base := getGaugeValue(t, HTTPRequestsInProgress)

	// 模拟10个HTTP请求
	for i := 0; i < 10; i++ {
		// 递增正在处理的请求数
		IncGauge(HTTPRequestsInProgress)

		// 模拟处理耗时
		start := time.Now()
		time.Sleep(10 * time.Millisecond)
		duration := time.Since(start).Seconds()

		// 记录耗时
		ObserveHistogramVec(HTTPRequestDuration, map[string]string{
			"method": "POST",
			"path":   "/api/v1/loans",
		}, duration)

		// 递增请求总数
		IncCounterVec(HTTPRequestsTotal, map[string]string{
			"method": "POST",
			"path":   "/api/v1/loans",
			"status": "201",
		})

		// 递减正在处理的请求数
		DecGauge(HTTPRequestsInProgress)
	}

	// 验证正在处理的请求数回到基线
	inProgress := getGaugeValue(t, HTTPRequestsInProgress)
	if inProgress != base {
		t.Errorf("正在处理的请求数错误: expected=%f, got=%f", base, inProgress)
	}

	t.Log("✅ 真实场景测试通过")
	t.Log("   提示: 启动Prometheus和Grafana后可在Dashboard中查看这些指标")
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
