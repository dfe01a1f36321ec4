package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// fakeReviewRepo 内存版书评仓储(只实现用例用到的方法)
type fakeReviewRepo struct {
	review.Repository
	reviews map[uint]*review.Review
	nextID  uint
}

func newFakeReviewRepo(reviews ...*review.Review) *fakeReviewRepo {
	repo := &fakeReviewRepo{reviews: make(map[uint]*review.Review), nextID: 1}
	for _, r := range reviews {
		repo.reviews[r.ID] = r
		if r.ID >= repo.nextID {
			repo.nextID = r.ID + 1
		}
	}
	return repo
}

func (r *fakeReviewRepo) Create(ctx context.Context, rev *review.Review) error {
	for _, existing := range r.reviews {
		if existing.UserID == rev.UserID && existing.BookID == rev.BookID {
			return review.ErrReviewDuplicate
		}
	}
	rev.ID = r.nextID
	r.nextID++
	cp := *rev
	r.reviews[rev.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	rev, ok := r.reviews[id]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	cp := *rev
	return &cp, nil
}

func (r *fakeReviewRepo) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	for _, rev := range r.reviews {
		if rev.UserID == userID && rev.BookID == bookID {
			cp := *rev
			return &cp, nil
		}
	}
	return nil, review.ErrReviewNotFound
}

func (r *fakeReviewRepo) Update(ctx context.Context, rev *review.Review) error {
	if _, ok := r.reviews[rev.ID]; !ok {
		return review.ErrReviewNotFound
	}
	cp := *rev
	r.reviews[rev.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.reviews[id]; !ok {
		return review.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}

// fakeBookRepo 只覆盖FindByID的图书仓储
type fakeBookRepo struct {
	book.Repository
	books map[uint]*book.Book
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

// fakeUserRepo 只覆盖FindByID的用户仓储
type fakeUserRepo struct {
	user.Repository
	users map[uint]*user.User
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	bookRepo := &fakeBookRepo{books: map[uint]*book.Book{
		1: {ID: 1, Title: "Go程序设计语言", ISBN: "9787111558422"},
	}}
	userRepo := &fakeUserRepo{users: map[uint]*user.User{
		10: {ID: 10, Email: "reader10@test.com"},
		11: {ID: 11, Email: "reader11@test.com"},
	}}

	t.Run("正常创建", func(t *testing.T) {
		uc := NewCreateReviewUseCase(newFakeReviewRepo(), bookRepo, userRepo)

		detail, err := uc.Execute(ctx, CreateReviewRequest{
			UserID: 10, BookID: 1, Rating: 5, Comment: "经典必读",
		})

		require.NoError(t, err)
		assert.NotZero(t, detail.ID)
		assert.Equal(t, 5, detail.Rating)
	})

	t.Run("只打分不写评论", func(t *testing.T) {
		uc := NewCreateReviewUseCase(newFakeReviewRepo(), bookRepo, userRepo)

		detail, err := uc.Execute(ctx, CreateReviewRequest{UserID: 10, BookID: 1, Rating: 3})

		require.NoError(t, err)
		assert.Empty(t, detail.Comment)
	})

	t.Run("同一用户重复评论被拒绝", func(t *testing.T) {
		uc := NewCreateReviewUseCase(newFakeReviewRepo(), bookRepo, userRepo)

		_, err := uc.Execute(ctx, CreateReviewRequest{UserID: 10, BookID: 1, Rating: 5})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, CreateReviewRequest{UserID: 10, BookID: 1, Rating: 4})
		assert.True(t, errors.Is(err, review.ErrReviewDuplicate))
	})

	t.Run("不同用户可以各评一条", func(t *testing.T) {
		repo := newFakeReviewRepo()
		uc := NewCreateReviewUseCase(repo, bookRepo, userRepo)

		_, err := uc.Execute(ctx, CreateReviewRequest{UserID: 10, BookID: 1, Rating: 5})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, CreateReviewRequest{UserID: 11, BookID: 1, Rating: 2})
		require.NoError(t, err)
	})

	t.Run("图书不存在", func(t *testing.T) {
		uc := NewCreateReviewUseCase(newFakeReviewRepo(), bookRepo, userRepo)

		_, err := uc.Execute(ctx, CreateReviewRequest{UserID: 10, BookID: 404, Rating: 5})

		assert.True(t, errors.Is(err, book.ErrBookNotFound))
	})

	t.Run("用户不存在", func(t *testing.T) {
		uc := NewCreateReviewUseCase(newFakeReviewRepo(), bookRepo, userRepo)

		_, err := uc.Execute(ctx, CreateReviewRequest{UserID: 404, BookID: 1, Rating: 5})

		assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
	})

	t.Run("评分超出范围", func(t *testing.T) {
		uc := NewCreateReviewUseCase(newFakeReviewRepo(), bookRepo, userRepo)

		_, err := uc.Execute(ctx, CreateReviewRequest{UserID: 10, BookID: 1, Rating: 6})
		assert.True(t, errors.Is(err, review.ErrInvalidRating))

		_, err = uc.Execute(ctx, CreateReviewRequest{UserID: 10, BookID: 1, Rating: 0})
		assert.True(t, errors.Is(err, review.ErrInvalidRating))
	})
}

func TestManageReview(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *fakeReviewRepo {
		rev, err := review.NewReview(10, 1, 4, "还不错")
		require.NoError(t, err)
		rev.ID = 1
		return newFakeReviewRepo(rev)
	}

	t.Run("作者修改自己的书评", func(t *testing.T) {
		uc := NewManageReviewUseCase(seed(t))
		rating := 2

		detail, err := uc.Update(ctx, 1, 10, false, UpdateReviewRequest{Rating: &rating})

		require.NoError(t, err)
		assert.Equal(t, 2, detail.Rating)
		assert.Equal(t, "还不错", detail.Comment, "未传字段保持不变")
	})

	t.Run("非作者修改被拒绝", func(t *testing.T) {
		uc := NewManageReviewUseCase(seed(t))
		rating := 1

		_, err := uc.Update(ctx, 1, 99, false, UpdateReviewRequest{Rating: &rating})

		assert.True(t, errors.Is(err, review.ErrNotOwner))
	})

	t.Run("管理员可以修改任意书评", func(t *testing.T) {
		uc := NewManageReviewUseCase(seed(t))
		comment := "内容违规，已处理"

		detail, err := uc.Update(ctx, 1, 99, true, UpdateReviewRequest{Comment: &comment})

		require.NoError(t, err)
		assert.Equal(t, comment, detail.Comment)
	})

	t.Run("作者删除自己的书评", func(t *testing.T) {
		repo := seed(t)
		uc := NewManageReviewUseCase(repo)

		require.NoError(t, uc.Delete(ctx, 1, 10, false))

		_, err := repo.FindByID(ctx, 1)
		assert.True(t, errors.Is(err, review.ErrReviewNotFound))
	})

	t.Run("非作者删除被拒绝", func(t *testing.T) {
		uc := NewManageReviewUseCase(seed(t))

		err := uc.Delete(ctx, 1, 99, false)

		assert.True(t, errors.Is(err, review.ErrNotOwner))
	})

	t.Run("管理员可以删除任意书评", func(t *testing.T) {
		uc := NewManageReviewUseCase(seed(t))

		assert.NoError(t, uc.Delete(ctx, 1, 99, true))
	})
}
