package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// ReturnBookUseCase 还书用例
// 业务规则:
// 1. 只有借阅人本人或管理员可以执行还书
// 2. 状态机守卫在领域实体内:已归还的记录再次归还一律拒绝
// 3. 归还时根据时间定格为RETURNED或OVERDUE
type ReturnBookUseCase struct {
	loanRepo loan.Repository
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(loanRepo loan.Repository) *ReturnBookUseCase {
	return &ReturnBookUseCase{loanRepo: loanRepo}
}

// Execute 执行还书
func (uc *ReturnBookUseCase) Execute(ctx context.Context, loanID, callerID uint, callerIsAdmin bool) (*LoanDetail, error) {
	// 1. 查找借阅记录
	l, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	// 2. 权限校验:本人或管理员
	if !l.IsOwnedBy(callerID) && !callerIsAdmin {
		return nil, apperrors.ErrForbidden
	}

	// 3. 状态机转换(领域行为,重复归还在这里被拒绝)
	now := time.Now()
	if err := l.Return(now); err != nil {
		return nil, err
	}

	// 4. 落库
	if err := uc.loanRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	// 还书指标按结果打标签(按时/逾期)
	metrics.IncCounterVec(metrics.LoansReturnedTotal, map[string]string{
		"result": l.Status.String(),
	})

	return toLoanDetail(l, now), nil
}
