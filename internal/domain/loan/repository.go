package loan

import (
	"context"
	"time"
)

// ListParams 借阅记录查询参数(管理端列表)
type ListParams struct {
	UserID   uint   // 按用户过滤(0表示不过滤)
	BookID   uint   // 按图书过滤(0表示不过滤)
	Status   Status // 按状态过滤(空表示不过滤)
	Page     int
	PageSize int
}

// Statistics 借阅统计结果
// 口径说明:三个计数均以"借出时间落在统计区间内"为基准,
// totalReturned/totalOverdue在此基础上再按当前状态过滤
type Statistics struct {
	TotalBorrowed int64 `json:"total_borrowed"` // 区间内借出总数
	TotalReturned int64 `json:"total_returned"` // 区间内借出且已按时归还数
	TotalOverdue  int64 `json:"total_overdue"`  // 区间内借出且已逾期归还数
}

// BookBorrowCount 图书借阅次数(热门图书榜单用)
type BookBorrowCount struct {
	BookID      uint  `json:"book_id"`
	BorrowCount int64 `json:"borrow_count"`
}

// DailyCount 按天聚合的借阅量(报表用)
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// Repository 借阅仓储接口(依赖倒置原则)
// 教学要点:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
// 3. CountActiveByBookID必须在持有图书行锁的事务内调用,
//    否则并发借书的check-then-act存在竞态
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, loan *Loan) error

	// FindByID 根据ID查找借阅记录
	// 如果不存在,返回ErrLoanNotFound
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// Update 更新借阅记录(归还/续借后的状态落库)
	Update(ctx context.Context, loan *Loan) error

	// List 分页查询借阅记录(管理端,支持多条件过滤)
	List(ctx context.Context, params ListParams) ([]*Loan, int64, error)

	// ListByUserID 查询用户的全部借阅历史(分页)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Loan, int64, error)

	// ListActiveByUserID 查询用户当前在借的记录(不分页,在借数量有限)
	ListActiveByUserID(ctx context.Context, userID uint) ([]*Loan, error)

	// FindOverdue 查询当前逾期未还的记录(BORROWED且应还时间早于now)
	// userID大于0时只看该用户的逾期记录
	FindOverdue(ctx context.Context, now time.Time, userID uint, page, pageSize int) ([]*Loan, int64, error)

	// CountActiveByBookID 统计图书当前在借数量(借书守卫/删除守卫用)
	CountActiveByBookID(ctx context.Context, bookID uint) (int64, error)

	// CountActiveByUserID 统计用户当前在借数量(仪表盘用)
	CountActiveByUserID(ctx context.Context, userID uint) (int64, error)

	// CountByStatus 按状态统计记录数(仪表盘用,status为空统计全部)
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// Statistics 统计区间内的借出/归还/逾期数量
	Statistics(ctx context.Context, start, end time.Time) (*Statistics, error)

	// MostBorrowed 借阅次数最多的图书Top N
	MostBorrowed(ctx context.Context, limit int) ([]*BookBorrowCount, error)

	// DailyCounts 区间内按天聚合的借出量(报表用)
	DailyCounts(ctx context.Context, start, end time.Time) ([]*DailyCount, error)
}
