package loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/loan"
)

func (r *fakeLoanRepo) FindOverdue(ctx context.Context, now time.Time, userID uint, page, pageSize int) ([]*loan.Loan, int64, error) {
	var result []*loan.Loan
	for _, l := range r.loans {
		if l.Status != loan.StatusBorrowed || !l.DueDate.Before(now) {
			continue
		}
		if userID > 0 && l.UserID != userID {
			continue
		}
		cp := *l
		result = append(result, &cp)
	}
	return result, int64(len(result)), nil
}

func TestOverdueLoans(t *testing.T) {
	ctx := context.Background()

	// 用户10一条逾期,用户20一条逾期,用户10另有一条未到期
	overdue10 := activeLoan(1, 10, time.Now().Add(-30*24*time.Hour))
	overdue20 := activeLoan(2, 20, time.Now().Add(-20*24*time.Hour))
	current10 := activeLoan(3, 10, time.Now())
	repo := newFakeLoanRepo(overdue10, overdue20, current10)
	uc := NewListLoansUseCase(repo)

	t.Run("不过滤时返回全部逾期", func(t *testing.T) {
		details, total, err := uc.Overdue(ctx, 0, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, d := range details {
			assert.True(t, d.Overdue)
		}
	})

	t.Run("按用户过滤", func(t *testing.T) {
		details, total, err := uc.Overdue(ctx, 10, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, details, 1)
		assert.Equal(t, uint(10), details[0].UserID)
		assert.Equal(t, uint(1), details[0].ID)
	})

	t.Run("该用户没有逾期记录", func(t *testing.T) {
		_, total, err := uc.Overdue(ctx, 99, 1, 10)

		require.NoError(t, err)
		assert.Zero(t, total)
	})
}
