package dto

import "time"

// BorrowBookRequest 借书请求
// user_id可选：普通用户只能为自己借书，管理员可代他人登记借阅
// due_date可选：缺省时按配置借期计算，传入时必须晚于当前时间
type BorrowBookRequest struct {
	BookID  uint       `json:"book_id" binding:"required"`
	UserID  uint       `json:"user_id"`
	DueDate *time.Time `json:"due_date"`
}

// RenewLoanRequest 续借请求
// new_due_date缺省时按默认借期顺延（当前到期日+14天）
type RenewLoanRequest struct {
	NewDueDate *time.Time `json:"new_due_date"`
}

// ListLoansQuery 借阅记录列表查询参数（管理端）
type ListLoansQuery struct {
	UserID   uint   `form:"user_id"`
	BookID   uint   `form:"book_id"`
	Status   string `form:"status"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=10"`
}

// OverdueLoansQuery 逾期清单查询参数（管理端）
type OverdueLoansQuery struct {
	UserID   uint `form:"user_id"`
	Page     int  `form:"page,default=1"`
	PageSize int  `form:"page_size,default=10"`
}

// PageQuery 通用分页查询参数
type PageQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=10"`
}

// DateRangeQuery 日期区间查询参数（统计/报表）
type DateRangeQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}
