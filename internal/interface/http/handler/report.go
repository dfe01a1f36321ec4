package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/xiebiao/library/internal/application/report"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// ReportHandler 报表HTTP处理器（管理端）
type ReportHandler struct {
	dashboardUseCase    *appreport.DashboardUseCase
	loanReportUseCase   *appreport.LoanReportUseCase
	reviewReportUseCase *appreport.ReviewReportUseCase
}

// NewReportHandler 创建报表处理器
func NewReportHandler(
	dashboardUseCase *appreport.DashboardUseCase,
	loanReportUseCase *appreport.LoanReportUseCase,
	reviewReportUseCase *appreport.ReviewReportUseCase,
) *ReportHandler {
	return &ReportHandler{
		dashboardUseCase:    dashboardUseCase,
		loanReportUseCase:   loanReportUseCase,
		reviewReportUseCase: reviewReportUseCase,
	}
}

// Dashboard 运营仪表盘
// @Summary      运营仪表盘
// @Description  全站计数汇总和热门图书榜单，结果缓存1分钟
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appreport.DashboardResponse}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	result, err := h.dashboardUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// LoanReport 借阅报表
// @Summary      借阅报表
// @Description  日期区间内的借阅汇总和按天借出量曲线
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string true "起始日期(YYYY-MM-DD)"
// @Param        end_date query string true "结束日期(YYYY-MM-DD)"
// @Success      200 {object} response.Response{data=appreport.LoanReportResponse}
// @Failure      400 {object} response.Response "日期格式错误"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/reports/loans [get]
func (h *ReportHandler) LoanReport(c *gin.Context) {
	var query dto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.loanReportUseCase.Execute(c.Request.Context(), appreport.LoanReportRequest{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ReviewReport 书评报表
// @Summary      书评报表
// @Description  全站评分分布和高分图书榜单
// @Tags         报表
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appreport.ReviewReportResponse}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/reports/reviews [get]
func (h *ReportHandler) ReviewReport(c *gin.Context) {
	result, err := h.reviewReportUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
