package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/user"
)

// fakeUserRepo 只覆盖Count的用户仓储
type fakeUserRepo struct {
	user.Repository
	total int64
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return r.total, nil
}

// fakeBookRepo 覆盖Count和FindByIDs的图书仓储
type fakeBookRepo struct {
	book.Repository
	total int64
	books map[uint]*book.Book
}

func (r *fakeBookRepo) Count(ctx context.Context) (int64, error) {
	return r.total, nil
}

func (r *fakeBookRepo) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	result := make([]*book.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

// fakeLoanRepo 按状态计数的借阅仓储
// 记录每次CountByStatus的入参,验证仪表盘的统计口径
type fakeLoanRepo struct {
	loan.Repository
	byStatus map[loan.Status]int64
	asked    []loan.Status
	top      []*loan.BookBorrowCount
}

func (r *fakeLoanRepo) CountByStatus(ctx context.Context, status loan.Status) (int64, error) {
	r.asked = append(r.asked, status)
	return r.byStatus[status], nil
}

func (r *fakeLoanRepo) MostBorrowed(ctx context.Context, limit int) ([]*loan.BookBorrowCount, error) {
	if len(r.top) > limit {
		return r.top[:limit], nil
	}
	return r.top, nil
}

// fakeReviewRepo 只覆盖Count的书评仓储
type fakeReviewRepo struct {
	review.Repository
	total int64
}

func (r *fakeReviewRepo) Count(ctx context.Context) (int64, error) {
	return r.total, nil
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	loanRepo := &fakeLoanRepo{
		byStatus: map[loan.Status]int64{
			"":                  10, // 全部
			loan.StatusBorrowed: 4,
			loan.StatusReturned: 3,
			loan.StatusOverdue:  3,
		},
		top: []*loan.BookBorrowCount{
			{BookID: 1, BorrowCount: 6},
			{BookID: 2, BorrowCount: 4},
		},
	}
	uc := NewDashboardUseCase(
		&fakeUserRepo{total: 20},
		&fakeBookRepo{total: 8, books: map[uint]*book.Book{
			1: {ID: 1, Title: "Go程序设计语言", ISBN: "9787111558422"},
			2: {ID: 2, Title: "数据密集型应用系统设计", ISBN: "9787115475886"},
		}},
		loanRepo,
		&fakeReviewRepo{total: 5},
		nil, // 无缓存,直接回源
	)

	resp, err := uc.Execute(ctx)
	require.NoError(t, err)

	t.Run("基础计数", func(t *testing.T) {
		assert.Equal(t, int64(20), resp.TotalUsers)
		assert.Equal(t, int64(8), resp.TotalBooks)
		assert.Equal(t, int64(10), resp.TotalLoans)
		assert.Equal(t, int64(5), resp.TotalReviews)
		assert.Equal(t, int64(4), resp.ActiveLoans)
		assert.WithinDuration(t, time.Now(), resp.GeneratedAt, time.Minute)
	})

	t.Run("逾期数取已登记的OVERDUE状态", func(t *testing.T) {
		assert.Equal(t, int64(3), resp.OverdueLoans)
		assert.Contains(t, loanRepo.asked, loan.StatusOverdue, "应该按OVERDUE状态统计,而不是动态计算在借超期")
	})

	t.Run("热门图书按借阅量排序", func(t *testing.T) {
		require.Len(t, resp.MostBorrowed, 2)
		assert.Equal(t, uint(1), resp.MostBorrowed[0].BookID)
		assert.Equal(t, int64(6), resp.MostBorrowed[0].BorrowCount)
		assert.Equal(t, "Go程序设计语言", resp.MostBorrowed[0].Title)
	})
}
