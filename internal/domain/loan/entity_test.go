package loan

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 借阅状态机测试
// 核心规则:
// 1. OVERDUE是归还时的定性结论,不是借阅中的自动状态
// 2. 终态(RETURNED/OVERDUE)不允许再次归还或续借
// 3. 续借只能向后延

func TestNewLoan(t *testing.T) {
	borrowDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)

	t.Run("默认借期14天", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)

		assert.Equal(t, uint(1), l.UserID)
		assert.Equal(t, uint(2), l.BookID)
		assert.Equal(t, StatusBorrowed, l.Status)
		assert.Nil(t, l.ReturnDate)
		assert.Equal(t, borrowDate.Add(14*24*time.Hour), l.DueDate)
	})

	t.Run("自定义借期", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 30*24*time.Hour)

		assert.Equal(t, borrowDate.Add(30*24*time.Hour), l.DueDate)
	})
}

func TestLoanReturn(t *testing.T) {
	borrowDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)

	t.Run("按时归还定格为RETURNED", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)
		returnTime := borrowDate.Add(7 * 24 * time.Hour)

		err := l.Return(returnTime)

		require.NoError(t, err)
		assert.Equal(t, StatusReturned, l.Status)
		require.NotNil(t, l.ReturnDate)
		assert.Equal(t, returnTime, *l.ReturnDate)
	})

	t.Run("到期日当天归还仍算按时", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)

		err := l.Return(l.DueDate)

		require.NoError(t, err)
		assert.Equal(t, StatusReturned, l.Status)
	})

	t.Run("逾期归还定格为OVERDUE", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)
		returnTime := l.DueDate.Add(time.Hour)

		err := l.Return(returnTime)

		require.NoError(t, err)
		assert.Equal(t, StatusOverdue, l.Status)
		require.NotNil(t, l.ReturnDate)
	})

	t.Run("按时归还后重复归还被拒绝", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)
		require.NoError(t, l.Return(borrowDate.Add(24*time.Hour)))

		err := l.Return(borrowDate.Add(48 * time.Hour))

		assert.True(t, errors.Is(err, ErrAlreadyReturned))
		// 终态和归还时间不被第二次归还破坏
		assert.Equal(t, StatusReturned, l.Status)
		assert.Equal(t, borrowDate.Add(24*time.Hour), *l.ReturnDate)
	})

	t.Run("逾期归还后重复归还同样被拒绝", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)
		require.NoError(t, l.Return(l.DueDate.Add(time.Hour)))

		err := l.Return(l.DueDate.Add(2 * time.Hour))

		assert.True(t, errors.Is(err, ErrAlreadyReturned))
		assert.Equal(t, StatusOverdue, l.Status)
	})
}

func TestLoanRenew(t *testing.T) {
	borrowDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)

	t.Run("正常续借向后延期", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)
		newDueDate := l.DueDate.Add(14 * 24 * time.Hour)

		err := l.Renew(newDueDate)

		require.NoError(t, err)
		assert.Equal(t, newDueDate, l.DueDate)
		assert.Equal(t, StatusBorrowed, l.Status)
	})

	t.Run("新应还时间等于当前被拒绝", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)

		err := l.Renew(l.DueDate)

		assert.True(t, errors.Is(err, ErrDueDateNotLater))
	})

	t.Run("新应还时间早于当前被拒绝", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)

		err := l.Renew(l.DueDate.Add(-time.Hour))

		assert.True(t, errors.Is(err, ErrDueDateNotLater))
	})

	t.Run("已归还的记录不能续借", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)
		require.NoError(t, l.Return(borrowDate.Add(24*time.Hour)))

		err := l.Renew(l.DueDate.Add(14 * 24 * time.Hour))

		assert.True(t, errors.Is(err, ErrAlreadyReturned))
	})

	t.Run("借阅中已逾期依然允许续借", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)
		now := l.DueDate.Add(48 * time.Hour)
		require.True(t, l.IsOverdue(now))

		err := l.Renew(now.Add(14 * 24 * time.Hour))

		require.NoError(t, err)
		assert.False(t, l.IsOverdue(now), "续借到未来日期后逾期消除")
	})
}

func TestLoanIsOverdue(t *testing.T) {
	borrowDate := time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)

	t.Run("未到期不逾期", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)

		assert.False(t, l.IsOverdue(borrowDate.Add(24*time.Hour)))
	})

	t.Run("过期未还动态判定为逾期但状态仍是BORROWED", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)
		now := l.DueDate.Add(time.Hour)

		assert.True(t, l.IsOverdue(now))
		assert.Equal(t, StatusBorrowed, l.Status, "持久化状态不因时间流逝改变")
	})

	t.Run("已归还的记录不参与逾期计算", func(t *testing.T) {
		l := NewLoan(1, 2, borrowDate, 0)
		require.NoError(t, l.Return(borrowDate.Add(24*time.Hour)))

		assert.False(t, l.IsOverdue(l.DueDate.Add(30*24*time.Hour)))
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusBorrowed.IsTerminal())
	assert.True(t, StatusReturned.IsTerminal())
	assert.True(t, StatusOverdue.IsTerminal())
}
