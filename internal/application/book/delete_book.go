package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/review"
)

// DeleteBookUseCase 删除图书用例
// 业务规则:存在未归还借阅(BORROWED)的图书不允许删除,
// 已归还/已逾期归还的历史记录和书评不阻止删除
type DeleteBookUseCase struct {
	bookRepo   book.Repository
	loanRepo   loan.Repository
	reviewRepo review.Repository
	txManager  TxManager
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	reviewRepo review.Repository,
	txManager TxManager,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:   bookRepo,
		loanRepo:   loanRepo,
		reviewRepo: reviewRepo,
		txManager:  txManager,
	}
}

// Execute 执行删除图书
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	// 1. 确认图书存在(不存在返回404而非静默成功)
	if _, err := uc.bookRepo.FindByID(ctx, id); err != nil {
		return err
	}

	// 2. 删除守卫:仅统计在借记录,历史借阅不阻止删除
	count, err := uc.loanRepo.CountActiveByBookID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return book.ErrHasActiveLoans
	}

	// 3. 事务内删除:书评级联清理 + 图书本体(含作者/分类关联)
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.reviewRepo.DeleteByBookID(txCtx, id); err != nil {
			return err
		}
		return uc.bookRepo.Delete(txCtx, id)
	})
}
