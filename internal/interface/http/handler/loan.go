package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	borrowUseCase     *apploan.BorrowBookUseCase
	returnUseCase     *apploan.ReturnBookUseCase
	renewUseCase      *apploan.RenewLoanUseCase
	listUseCase       *apploan.ListLoansUseCase
	statisticsUseCase *apploan.StatisticsUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	borrowUseCase *apploan.BorrowBookUseCase,
	returnUseCase *apploan.ReturnBookUseCase,
	renewUseCase *apploan.RenewLoanUseCase,
	listUseCase *apploan.ListLoansUseCase,
	statisticsUseCase *apploan.StatisticsUseCase,
) *LoanHandler {
	return &LoanHandler{
		borrowUseCase:     borrowUseCase,
		returnUseCase:     returnUseCase,
		renewUseCase:      renewUseCase,
		listUseCase:       listUseCase,
		statisticsUseCase: statisticsUseCase,
	}
}

// BorrowBook 借书
// @Summary      借书
// @Description  借出一本图书。图书已被借出或账号不可用时拒绝。管理员可通过user_id代他人登记。due_date缺省时按默认借期计算
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BorrowBookRequest true "借书信息"
// @Success      201 {object} response.Response{data=apploan.LoanDetail} "借阅成功"
// @Failure      400 {object} response.Response "图书已被借出或到期日不在未来"
// @Failure      403 {object} response.Response "不能替他人借书"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "账号不可用"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) BorrowBook(c *gin.Context) {
	var req dto.BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	callerID := middleware.MustGetUserID(c)

	// 借阅人默认为当前用户，仅管理员可指定他人
	borrowerID := callerID
	if req.UserID != 0 && req.UserID != callerID {
		if !middleware.IsAdmin(c) {
			response.Error(c, apperrors.ErrForbidden)
			return
		}
		borrowerID = req.UserID
	}

	appReq := apploan.BorrowBookRequest{
		UserID: borrowerID,
		BookID: req.BookID,
	}
	// 指定到期日必须严格晚于当前时间
	if req.DueDate != nil {
		if !req.DueDate.After(time.Now()) {
			response.ErrorWithCode(c, 40900, "到期日必须晚于当前时间")
			return
		}
		appReq.DueDate = *req.DueDate
	}

	detail, err := h.borrowUseCase.Execute(c.Request.Context(), appReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, detail)
}

// ReturnBook 还书
// @Summary      还书
// @Description  归还图书。逾期归还记为OVERDUE。重复归还返回错误
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=apploan.LoanDetail}
// @Failure      400 {object} response.Response "该记录已归还"
// @Failure      403 {object} response.Response "只能归还自己的借阅"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id}/return [put]
func (h *LoanHandler) ReturnBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.returnUseCase.Execute(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// RenewLoan 续借
// @Summary      续借
// @Description  延长归还期限，新到期日必须晚于当前到期日
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Param        request body dto.RenewLoanRequest true "新到期日(缺省为当前到期日+14天)"
// @Success      200 {object} response.Response{data=apploan.LoanDetail}
// @Failure      400 {object} response.Response "记录已归还或新到期日不晚于当前"
// @Failure      403 {object} response.Response "只能续借自己的借阅"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id}/renew [put]
func (h *LoanHandler) RenewLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RenewLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	appReq := apploan.RenewLoanRequest{
		LoanID:        id,
		CallerID:      middleware.MustGetUserID(c),
		CallerIsAdmin: middleware.IsAdmin(c),
	}
	// 指定新到期日必须严格晚于当前时间,是否晚于当前到期日由领域层校验
	if req.NewDueDate != nil {
		if !req.NewDueDate.After(time.Now()) {
			response.ErrorWithCode(c, 40900, "新到期日必须晚于当前时间")
			return
		}
		appReq.NewDueDate = *req.NewDueDate
	}

	detail, err := h.renewUseCase.Execute(c.Request.Context(), appReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// GetLoan 查询借阅记录详情
// @Summary      查询借阅记录详情
// @Description  本人或管理员可查询
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response{data=apploan.LoanDetail}
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.listUseCase.Get(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// MyLoans 我的借阅历史
// @Summary      我的借阅历史
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/loans/my [get]
func (h *LoanHandler) MyLoans(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	callerID := middleware.MustGetUserID(c)

	loans, total, err := h.listUseCase.History(c.Request.Context(), callerID, callerID, middleware.IsAdmin(c), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, loans, total, query.Page, query.PageSize)
}

// MyActiveLoans 我的在借记录
// @Summary      我的在借记录
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apploan.LoanDetail}
// @Router       /api/v1/loans/my/active [get]
func (h *LoanHandler) MyActiveLoans(c *gin.Context) {
	callerID := middleware.MustGetUserID(c)

	loans, err := h.listUseCase.Active(c.Request.Context(), callerID, callerID, middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, loans)
}

// UserLoans 某用户的借阅历史
// @Summary      某用户的借阅历史
// @Description  本人或管理员可查询
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/users/{id}/loans [get]
func (h *LoanHandler) UserLoans(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	loans, total, err := h.listUseCase.History(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsAdmin(c), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, loans, total, query.Page, query.PageSize)
}

// ListLoans 借阅记录列表（管理端）
// @Summary      借阅记录列表
// @Description  管理员分页查询，支持按用户/图书/状态过滤
// @Tags         借阅管理
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query int false "用户ID"
// @Param        book_id query int false "图书ID"
// @Param        status query string false "借阅状态" Enums(BORROWED, RETURNED, OVERDUE)
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	var query dto.ListLoansQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	loans, total, err := h.listUseCase.List(c.Request.Context(), apploan.ListLoansRequest{
		UserID:   query.UserID,
		BookID:   query.BookID,
		Status:   query.Status,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, loans, total, query.Page, query.PageSize)
}

// OverdueLoans 逾期未还列表（管理端）
// @Summary      逾期未还列表
// @Description  当前仍在借且已过到期日的记录，可按用户过滤
// @Tags         借阅管理
// @Produce      json
// @Security     BearerAuth
// @Param        user_id query int false "用户ID"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/loans/overdue [get]
func (h *LoanHandler) OverdueLoans(c *gin.Context) {
	var query dto.OverdueLoansQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	loans, total, err := h.listUseCase.Overdue(c.Request.Context(), query.UserID, query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, loans, total, query.Page, query.PageSize)
}

// LoanStatistics 借阅统计（管理端）
// @Summary      借阅统计
// @Description  统计日期区间内的借出/归还/逾期数量
// @Tags         借阅管理
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string true "起始日期(YYYY-MM-DD)"
// @Param        end_date query string true "结束日期(YYYY-MM-DD)"
// @Success      200 {object} response.Response{data=apploan.StatisticsResponse}
// @Failure      400 {object} response.Response "日期格式错误"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/loans/statistics [get]
func (h *LoanHandler) LoanStatistics(c *gin.Context) {
	var query dto.DateRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	stats, err := h.statisticsUseCase.Execute(c.Request.Context(), apploan.StatisticsRequest{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
