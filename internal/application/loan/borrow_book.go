package loan

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/metrics"
)

// BorrowBookUseCase 借书用例
// 教学要点:这是整个项目最核心的用例
// 涉及:事务处理、并发控制、业务规则校验
type BorrowBookUseCase struct {
	loanRepo   loan.Repository
	bookRepo   book.Repository
	userRepo   user.Repository
	txManager  TxManager
	loanPeriod time.Duration // 借期,0表示使用领域默认值
}

// NewBorrowBookUseCase 创建借书用例
func NewBorrowBookUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
	txManager TxManager,
	cfg *config.Config,
) *BorrowBookUseCase {
	var period time.Duration
	if cfg != nil && cfg.Loan.LoanPeriodDays > 0 {
		period = time.Duration(cfg.Loan.LoanPeriodDays) * 24 * time.Hour
	}
	return &BorrowBookUseCase{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		loanPeriod: period,
	}
}

// BorrowBookRequest 借书请求DTO
type BorrowBookRequest struct {
	UserID  uint      // 借阅人ID(从JWT中提取,或管理员代借时指定)
	BookID  uint      // 图书ID
	DueDate time.Time // 应还时间,零值表示按配置借期计算
}

// LoanDetail 借阅记录DTO(借书/还书/续借/查询共用)
type LoanDetail struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	BookID     uint       `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
	Overdue    bool       `json:"overdue"` // 当前是否逾期(动态计算)
}

// Execute 执行借书用例
// 教学重点:防止同一本书被并发借出的完整流程
//
// 核心问题:check-then-act竞态
// 场景:一本书只有一册,两个读者同时点借阅
// 错误实现:
//  1. 查询在借数量 → 0
//  2. 判断可借 → 可借
//  3. 创建借阅记录
//     结果:两个请求都通过了步骤2,同一本书被借出两次
//
// 正确实现:悲观锁
//  1. SELECT FOR UPDATE 锁定图书行
//  2. 在锁内统计在借数量
//  3. 创建借阅记录
//  4. COMMIT释放锁
func (uc *BorrowBookUseCase) Execute(ctx context.Context, req BorrowBookRequest) (*LoanDetail, error) {
	// 1. 借阅人守卫:必须存在且状态为ACTIVE
	u, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !u.CanBorrow() {
		metrics.IncCounter(metrics.LoansRejectedTotal)
		return nil, loan.ErrUserNotActive
	}

	// 使用事务执行整个借书流程
	var result *loan.Loan
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:锁定图书行(悲观锁,序列化并发借书)
		// ========================================
		// LockByID执行:SELECT * FROM books WHERE id = ? FOR UPDATE
		// 其他事务必须等待当前事务COMMIT或ROLLBACK后才能访问该行
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		// ========================================
		// 步骤2:可借性守卫(必须在锁内检查)
		// ========================================
		activeCount, err := uc.loanRepo.CountActiveByBookID(txCtx, b.ID)
		if err != nil {
			return err
		}
		if activeCount > 0 {
			return loan.ErrBookUnavailable
		}

		// ========================================
		// 步骤3:创建借阅记录(事务自动COMMIT)
		// ========================================
		// 调用方指定了应还时间则精确使用,未来性已在HTTP边界校验
		now := time.Now()
		period := uc.loanPeriod
		if !req.DueDate.IsZero() {
			period = req.DueDate.Sub(now)
		}
		newLoan := loan.NewLoan(req.UserID, b.ID, now, period)
		if err := uc.loanRepo.Create(txCtx, newLoan); err != nil {
			return err
		}

		result = newLoan
		return nil
	})

	if err != nil {
		// 只统计被守卫规则拒绝的请求,系统错误不算
		if errors.Is(err, loan.ErrBookUnavailable) {
			metrics.IncCounter(metrics.LoansRejectedTotal)
		}
		return nil, err
	}

	metrics.IncCounter(metrics.LoansBorrowedTotal)
	return toLoanDetail(result, time.Now()), nil
}

// toLoanDetail 组装借阅记录DTO
func toLoanDetail(l *loan.Loan, now time.Time) *LoanDetail {
	return &LoanDetail{
		ID:         l.ID,
		UserID:     l.UserID,
		BookID:     l.BookID,
		BorrowDate: l.BorrowDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     l.Status.String(),
		Overdue:    l.IsOverdue(now),
	}
}
