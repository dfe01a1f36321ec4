package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/review"
)

// fakeTxManager 直接执行事务函数的假实现
type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeDeleteBookRepo 覆盖删除用例用到的图书仓储方法
type fakeDeleteBookRepo struct {
	book.Repository
	books map[uint]*book.Book
}

func (r *fakeDeleteBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeDeleteBookRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

// fakeGuardLoanRepo 按图书在借计数的借阅仓储
type fakeGuardLoanRepo struct {
	loan.Repository
	activeByBook map[uint]int64
}

func (r *fakeGuardLoanRepo) CountActiveByBookID(ctx context.Context, bookID uint) (int64, error) {
	return r.activeByBook[bookID], nil
}

// fakeCascadeReviewRepo 记录书评级联清理的书评仓储
type fakeCascadeReviewRepo struct {
	review.Repository
	deletedBookIDs []uint
}

func (r *fakeCascadeReviewRepo) DeleteByBookID(ctx context.Context, bookID uint) error {
	r.deletedBookIDs = append(r.deletedBookIDs, bookID)
	return nil
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	newUC := func(active map[uint]int64) (*DeleteBookUseCase, *fakeDeleteBookRepo, *fakeCascadeReviewRepo) {
		bookRepo := &fakeDeleteBookRepo{books: map[uint]*book.Book{
			1: {ID: 1, Title: "Go程序设计语言", ISBN: "9787111558422"},
		}}
		reviewRepo := &fakeCascadeReviewRepo{}
		uc := NewDeleteBookUseCase(bookRepo, &fakeGuardLoanRepo{activeByBook: active}, reviewRepo, &fakeTxManager{})
		return uc, bookRepo, reviewRepo
	}

	t.Run("无在借记录时删除成功", func(t *testing.T) {
		uc, bookRepo, reviewRepo := newUC(nil)

		require.NoError(t, uc.Execute(ctx, 1))

		_, err := bookRepo.FindByID(ctx, 1)
		assert.True(t, errors.Is(err, book.ErrBookNotFound))
		assert.Equal(t, []uint{1}, reviewRepo.deletedBookIDs, "书评随图书级联清理")
	})

	t.Run("有在借记录时拒绝删除", func(t *testing.T) {
		uc, bookRepo, _ := newUC(map[uint]int64{1: 1})

		err := uc.Execute(ctx, 1)

		assert.True(t, errors.Is(err, book.ErrHasActiveLoans))
		_, findErr := bookRepo.FindByID(ctx, 1)
		assert.NoError(t, findErr, "图书应该保留")
	})

	t.Run("仅有历史借阅不阻止删除", func(t *testing.T) {
		// 该图书有已归还/已逾期归还的记录,但在借数为0
		uc, _, _ := newUC(map[uint]int64{1: 0})

		assert.NoError(t, uc.Execute(ctx, 1))
	})

	t.Run("图书不存在", func(t *testing.T) {
		uc, _, _ := newUC(nil)

		err := uc.Execute(ctx, 404)

		assert.True(t, errors.Is(err, book.ErrBookNotFound))
	})
}
