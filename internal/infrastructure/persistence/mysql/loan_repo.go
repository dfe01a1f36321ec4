package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/loan/repository.go定义的接口
// 2. CountActiveByBookID配合bookRepository.LockByID在同一事务内使用,
//    保证"图书是否在借"的检查与借阅记录的创建是原子的
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := toLoanModel(l)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	// 回填自增ID
	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := r.getDB(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// Update 更新借阅记录(归还/续借后的状态落库)
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	// 使用map更新,ReturnDate为nil时也能正确写入NULL
	err := r.getDB(ctx).Model(&LoanModel{}).Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"due_date":    l.DueDate,
			"return_date": l.ReturnDate,
			"status":      string(l.Status),
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新借阅记录失败")
	}

	return nil
}

// List 分页查询借阅记录(管理端)
func (r *loanRepository) List(ctx context.Context, params loan.ListParams) ([]*loan.Loan, int64, error) {
	var models []LoanModel
	var total int64

	query := r.getDB(ctx).Model(&LoanModel{})

	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.BookID > 0 {
		query = query.Where("book_id = ?", params.BookID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅记录总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Order("borrow_date DESC").Limit(params.PageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅记录列表失败")
	}

	return toLoanEntities(models), total, nil
}

// ListByUserID 查询用户的全部借阅历史
func (r *loanRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*loan.Loan, int64, error) {
	var models []LoanModel
	var total int64

	query := r.getDB(ctx).Model(&LoanModel{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅历史总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("borrow_date DESC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅历史失败")
	}

	return toLoanEntities(models), total, nil
}

// ListActiveByUserID 查询用户当前在借的记录
func (r *loanRepository) ListActiveByUserID(ctx context.Context, userID uint) ([]*loan.Loan, error) {
	var models []LoanModel
	err := r.getDB(ctx).
		Where("user_id = ? AND status = ?", userID, string(loan.StatusBorrowed)).
		Order("due_date ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询在借记录失败")
	}

	return toLoanEntities(models), nil
}

// FindOverdue 查询当前逾期未还的记录
// 口径:BORROWED且应还时间早于now(持久化状态仍是BORROWED)
func (r *loanRepository) FindOverdue(ctx context.Context, now time.Time, userID uint, page, pageSize int) ([]*loan.Loan, int64, error) {
	var models []LoanModel
	var total int64

	query := r.getDB(ctx).Model(&LoanModel{}).
		Where("status = ? AND due_date < ?", string(loan.StatusBorrowed), now)

	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询逾期记录总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("due_date ASC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询逾期记录失败")
	}

	return toLoanEntities(models), total, nil
}

// CountActiveByBookID 统计图书当前在借数量(借书守卫用)
// 注意:必须在持有图书行锁的事务内调用,否则存在check-then-act竞态
func (r *loanRepository) CountActiveByBookID(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&LoanModel{}).
		Where("book_id = ? AND status = ?", bookID, string(loan.StatusBorrowed)).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计图书在借数量失败")
	}
	return count, nil
}

// CountActiveByUserID 统计用户当前在借数量
func (r *loanRepository) CountActiveByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&LoanModel{}).
		Where("user_id = ? AND status = ?", userID, string(loan.StatusBorrowed)).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计用户在借数量失败")
	}
	return count, nil
}

// CountByStatus 按状态统计记录数
func (r *loanRepository) CountByStatus(ctx context.Context, status loan.Status) (int64, error) {
	var count int64
	query := r.getDB(ctx).Model(&LoanModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "按状态统计借阅记录失败")
	}
	return count, nil
}

// Statistics 统计区间内的借出/归还/逾期数量
// 口径:三个计数均以borrow_date落在[start, end]为基准,
// 归还/逾期在此基础上再按当前状态过滤
func (r *loanRepository) Statistics(ctx context.Context, start, end time.Time) (*loan.Statistics, error) {
	db := r.getDB(ctx)
	stats := &loan.Statistics{}

	base := "borrow_date >= ? AND borrow_date <= ?"

	if err := db.Model(&LoanModel{}).Where(base, start, end).
		Count(&stats.TotalBorrowed).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计借出数量失败")
	}

	if err := db.Model(&LoanModel{}).Where(base, start, end).
		Where("status = ?", string(loan.StatusReturned)).
		Count(&stats.TotalReturned).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计归还数量失败")
	}

	if err := db.Model(&LoanModel{}).Where(base, start, end).
		Where("status = ?", string(loan.StatusOverdue)).
		Count(&stats.TotalOverdue).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计逾期数量失败")
	}

	return stats, nil
}

// MostBorrowed 借阅次数最多的图书Top N
func (r *loanRepository) MostBorrowed(ctx context.Context, limit int) ([]*loan.BookBorrowCount, error) {
	var results []*loan.BookBorrowCount
	err := r.getDB(ctx).Model(&LoanModel{}).
		Select("book_id, COUNT(*) AS borrow_count").
		Group("book_id").
		Order("borrow_count DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计热门图书失败")
	}
	return results, nil
}

// DailyCounts 区间内按天聚合的借出量
func (r *loanRepository) DailyCounts(ctx context.Context, start, end time.Time) ([]*loan.DailyCount, error) {
	var results []*loan.DailyCount
	err := r.getDB(ctx).Model(&LoanModel{}).
		Select("DATE_FORMAT(borrow_date, '%Y-%m-%d') AS date, COUNT(*) AS count").
		Where("borrow_date >= ? AND borrow_date <= ?", start, end).
		Group("date").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计每日借出量失败")
	}
	return results, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toLoanModel 领域实体 → GORM模型
func toLoanModel(l *loan.Loan) *LoanModel {
	return &LoanModel{
		ID:         l.ID,
		UserID:     l.UserID,
		BookID:     l.BookID,
		BorrowDate: l.BorrowDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     string(l.Status),
	}
}

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(model *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:         model.ID,
		UserID:     model.UserID,
		BookID:     model.BookID,
		BorrowDate: model.BorrowDate,
		DueDate:    model.DueDate,
		ReturnDate: model.ReturnDate,
		Status:     loan.Status(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// toLoanEntities 批量转换
func toLoanEntities(models []LoanModel) []*loan.Loan {
	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}
	return loans
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *loanRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
