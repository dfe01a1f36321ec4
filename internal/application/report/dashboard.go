package report

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
)

// dashboardCacheTTL 仪表盘缓存时长
// 管理端轮询场景,1分钟内的数据偏差可以接受
const dashboardCacheTTL = time.Minute

// DashboardUseCase 仪表盘用例(管理端)
// 设计说明:
// 1. 汇总各聚合的计数,是典型的跨聚合只读视图
// 2. 涉及7+次聚合查询,用Redis短TTL缓存挡住轮询压力
// 3. 缓存读写失败都只记日志,降级为直接查库
type DashboardUseCase struct {
	userRepo   user.Repository
	bookRepo   book.Repository
	loanRepo   loan.Repository
	reviewRepo review.Repository
	cache      *redis.ReportCache
}

// NewDashboardUseCase 创建仪表盘用例
func NewDashboardUseCase(
	userRepo user.Repository,
	bookRepo book.Repository,
	loanRepo loan.Repository,
	reviewRepo review.Repository,
	cache *redis.ReportCache,
) *DashboardUseCase {
	return &DashboardUseCase{
		userRepo:   userRepo,
		bookRepo:   bookRepo,
		loanRepo:   loanRepo,
		reviewRepo: reviewRepo,
		cache:      cache,
	}
}

// DashboardResponse 仪表盘响应DTO
type DashboardResponse struct {
	TotalUsers   int64          `json:"total_users"`
	TotalBooks   int64          `json:"total_books"`
	TotalLoans   int64          `json:"total_loans"`
	TotalReviews int64          `json:"total_reviews"`
	ActiveLoans  int64          `json:"active_loans"`  // 当前在借数
	OverdueLoans int64          `json:"overdue_loans"` // 已登记逾期归还数(status=OVERDUE)
	MostBorrowed []*PopularBook `json:"most_borrowed"` // 热门图书Top 5
	GeneratedAt  time.Time      `json:"generated_at"`  // 数据生成时间(缓存命中时早于当前时间)
}

// PopularBook 热门图书榜单项
type PopularBook struct {
	BookID      uint   `json:"book_id"`
	Title       string `json:"title"`
	ISBN        string `json:"isbn"`
	BorrowCount int64  `json:"borrow_count"`
}

// Execute 生成仪表盘数据
func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardResponse, error) {
	// 1. 尝试缓存
	if uc.cache != nil {
		var cached DashboardResponse
		err := uc.cache.Get(ctx, "dashboard", &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			log.Printf("读取仪表盘缓存失败: %v", err)
		}
	}

	// 2. 回源数据库
	resp, err := uc.build(ctx)
	if err != nil {
		return nil, err
	}

	// 3. 写回缓存(失败不影响响应)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, "dashboard", resp, dashboardCacheTTL); err != nil {
			log.Printf("写入仪表盘缓存失败: %v", err)
		}
	}

	return resp, nil
}

// build 聚合各项计数
func (uc *DashboardUseCase) build(ctx context.Context) (*DashboardResponse, error) {
	now := time.Now()

	totalUsers, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalBooks, err := uc.bookRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalLoans, err := uc.loanRepo.CountByStatus(ctx, "")
	if err != nil {
		return nil, err
	}

	totalReviews, err := uc.reviewRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeLoans, err := uc.loanRepo.CountByStatus(ctx, loan.StatusBorrowed)
	if err != nil {
		return nil, err
	}

	// 逾期口径:已登记的OVERDUE状态(逾期归还时落库)
	// 在借中已超期的记录走逾期清单接口,不混进这里
	overdueLoans, err := uc.loanRepo.CountByStatus(ctx, loan.StatusOverdue)
	if err != nil {
		return nil, err
	}

	mostBorrowed, err := uc.topBorrowed(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalUsers:   totalUsers,
		TotalBooks:   totalBooks,
		TotalLoans:   totalLoans,
		TotalReviews: totalReviews,
		ActiveLoans:  activeLoans,
		OverdueLoans: overdueLoans,
		MostBorrowed: mostBorrowed,
		GeneratedAt:  now,
	}, nil
}

// topBorrowed 组装热门图书榜单
// 借阅次数从loans聚合,图书信息批量查询后按榜单顺序填充
func (uc *DashboardUseCase) topBorrowed(ctx context.Context, limit int) ([]*PopularBook, error) {
	counts, err := uc.loanRepo.MostBorrowed(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return []*PopularBook{}, nil
	}

	ids := make([]uint, len(counts))
	for i, c := range counts {
		ids[i] = c.BookID
	}

	books, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	result := make([]*PopularBook, 0, len(counts))
	for _, c := range counts {
		b, ok := byID[c.BookID]
		if !ok {
			// 图书已被删除但借阅记录还在,跳过
			continue
		}
		result = append(result, &PopularBook{
			BookID:      b.ID,
			Title:       b.Title,
			ISBN:        b.ISBN,
			BorrowCount: c.BorrowCount,
		})
	}

	return result, nil
}
