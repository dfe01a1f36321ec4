package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ListLoansUseCase 借阅记录查询用例
// 覆盖:管理端列表、单条详情、用户借阅历史、用户在借记录、逾期清单
type ListLoansUseCase struct {
	loanRepo loan.Repository
}

// NewListLoansUseCase 创建借阅记录查询用例
func NewListLoansUseCase(loanRepo loan.Repository) *ListLoansUseCase {
	return &ListLoansUseCase{loanRepo: loanRepo}
}

// ListLoansRequest 管理端列表请求DTO
type ListLoansRequest struct {
	UserID   uint
	BookID   uint
	Status   string
	Page     int
	PageSize int
}

// List 分页查询借阅记录(管理端)
func (uc *ListLoansUseCase) List(ctx context.Context, req ListLoansRequest) ([]*LoanDetail, int64, error) {
	normalizePage(&req.Page, &req.PageSize)

	if req.Status != "" && !isValidStatus(req.Status) {
		return nil, 0, apperrors.New(apperrors.ErrCodeInvalidParams, "无效的借阅状态")
	}

	loans, total, err := uc.loanRepo.List(ctx, loan.ListParams{
		UserID:   req.UserID,
		BookID:   req.BookID,
		Status:   loan.Status(req.Status),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	return toLoanDetails(loans), total, nil
}

// Get 查询单条借阅记录
// 权限规则:本人或管理员
func (uc *ListLoansUseCase) Get(ctx context.Context, loanID, callerID uint, callerIsAdmin bool) (*LoanDetail, error) {
	l, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if !l.IsOwnedBy(callerID) && !callerIsAdmin {
		return nil, apperrors.ErrForbidden
	}

	return toLoanDetail(l, time.Now()), nil
}

// History 查询用户的借阅历史(分页)
// 权限规则:本人或管理员
func (uc *ListLoansUseCase) History(ctx context.Context, userID, callerID uint, callerIsAdmin bool, page, pageSize int) ([]*LoanDetail, int64, error) {
	if userID != callerID && !callerIsAdmin {
		return nil, 0, apperrors.ErrForbidden
	}

	normalizePage(&page, &pageSize)

	loans, total, err := uc.loanRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return toLoanDetails(loans), total, nil
}

// Active 查询用户当前在借的记录
// 权限规则:本人或管理员
func (uc *ListLoansUseCase) Active(ctx context.Context, userID, callerID uint, callerIsAdmin bool) ([]*LoanDetail, error) {
	if userID != callerID && !callerIsAdmin {
		return nil, apperrors.ErrForbidden
	}

	loans, err := uc.loanRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toLoanDetails(loans), nil
}

// Overdue 查询当前逾期未还的记录(管理端)
// userID大于0时只看该用户的逾期记录
func (uc *ListLoansUseCase) Overdue(ctx context.Context, userID uint, page, pageSize int) ([]*LoanDetail, int64, error) {
	normalizePage(&page, &pageSize)

	loans, total, err := uc.loanRepo.FindOverdue(ctx, time.Now(), userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return toLoanDetails(loans), total, nil
}

// =========================================
// 辅助函数
// =========================================

func toLoanDetails(loans []*loan.Loan) []*LoanDetail {
	now := time.Now()
	details := make([]*LoanDetail, len(loans))
	for i, l := range loans {
		details[i] = toLoanDetail(l, now)
	}
	return details
}

func isValidStatus(s string) bool {
	switch loan.Status(s) {
	case loan.StatusBorrowed, loan.StatusReturned, loan.StatusOverdue:
		return true
	}
	return false
}

// normalizePage 分页参数兜底（页码从1开始，每页最多100条）
func normalizePage(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = 10
	}
	if *pageSize > 100 {
		*pageSize = 100
	}
}
