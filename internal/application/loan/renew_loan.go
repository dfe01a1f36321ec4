package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// RenewLoanUseCase 续借用例
// 业务规则:
// 1. 只有借阅人本人或管理员可以续借
// 2. 只有BORROWED状态可以续借(已归还的记录不能"复活")
// 3. 新应还时间必须严格晚于当前应还时间
type RenewLoanUseCase struct {
	loanRepo loan.Repository
}

// NewRenewLoanUseCase 创建续借用例
func NewRenewLoanUseCase(loanRepo loan.Repository) *RenewLoanUseCase {
	return &RenewLoanUseCase{loanRepo: loanRepo}
}

// RenewLoanRequest 续借请求DTO
// NewDueDate为零值时按默认借期顺延(当前应还时间+14天)
type RenewLoanRequest struct {
	LoanID        uint
	NewDueDate    time.Time
	CallerID      uint
	CallerIsAdmin bool
}

// Execute 执行续借
func (uc *RenewLoanUseCase) Execute(ctx context.Context, req RenewLoanRequest) (*LoanDetail, error) {
	// 1. 查找借阅记录
	l, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return nil, err
	}

	// 2. 权限校验:本人或管理员
	if !l.IsOwnedBy(req.CallerID) && !req.CallerIsAdmin {
		return nil, apperrors.ErrForbidden
	}

	// 3. 状态机转换(领域行为)
	// Renew保证新应还时间严格晚于当前应还时间
	newDueDate := req.NewDueDate
	if newDueDate.IsZero() {
		newDueDate = l.DueDate.Add(loan.DefaultLoanPeriod)
	}
	if err := l.Renew(newDueDate); err != nil {
		return nil, err
	}

	// 4. 落库
	if err := uc.loanRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	return toLoanDetail(l, time.Now()), nil
}
