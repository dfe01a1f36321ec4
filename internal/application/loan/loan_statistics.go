package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// StatisticsUseCase 借阅统计用例(管理端)
// 口径说明:
// 1. 三个计数均以"借出时间落在统计区间内"为基准
// 2. totalReturned/totalOverdue在此基础上按当前状态过滤,
//    所以三者满足 totalBorrowed >= totalReturned + totalOverdue
//    (差值是仍在借的记录)
type StatisticsUseCase struct {
	loanRepo loan.Repository
}

// NewStatisticsUseCase 创建借阅统计用例
func NewStatisticsUseCase(loanRepo loan.Repository) *StatisticsUseCase {
	return &StatisticsUseCase{loanRepo: loanRepo}
}

// StatisticsRequest 统计请求DTO
type StatisticsRequest struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
}

// StatisticsResponse 统计响应DTO
type StatisticsResponse struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalBorrowed int64  `json:"total_borrowed"`
	TotalReturned int64  `json:"total_returned"`
	TotalOverdue  int64  `json:"total_overdue"`
}

// Execute 执行借阅统计
func (uc *StatisticsUseCase) Execute(ctx context.Context, req StatisticsRequest) (*StatisticsResponse, error) {
	start, end, err := ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	stats, err := uc.loanRepo.Statistics(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TotalBorrowed: stats.TotalBorrowed,
		TotalReturned: stats.TotalReturned,
		TotalOverdue:  stats.TotalOverdue,
	}, nil
}

// ParseDateRange 解析统计区间
// 规则:
// 1. 两个日期都必填,格式YYYY-MM-DD
// 2. 结束日期扩展到当天23:59:59.999999999(闭区间,含结束当天)
// 3. 开始日期不能晚于结束日期
func ParseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrCodeInvalidParams, "开始日期和结束日期不能为空")
	}

	start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrCodeInvalidParams, "开始日期格式错误(应为YYYY-MM-DD)")
	}

	end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrCodeInvalidParams, "结束日期格式错误(应为YYYY-MM-DD)")
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrCodeInvalidParams, "开始日期不能晚于结束日期")
	}

	// 结束日期扩展到当天最后一刻
	end = end.Add(24*time.Hour - time.Nanosecond)

	return start, end, nil
}
