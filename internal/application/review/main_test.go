package review

import (
	"os"
	"testing"

	"github.com/xiebiao/library/pkg/metrics"
)

// 用例内部会递增Prometheus计数器,测试前需完成指标注册
func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}
