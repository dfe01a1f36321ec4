package review

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/pkg/metrics"
)

// CreateReviewUseCase 创建书评用例
// 业务规则:
// 1. 用户和图书都必须存在(管理员代录场景下用户ID来自请求)
// 2. 一个用户对一本书只能有一条书评
//    (应用层先查一次给出友好错误,数据库唯一索引兜底并发)
type CreateReviewUseCase struct {
	reviewRepo review.Repository
	bookRepo   book.Repository
	userRepo   user.Repository
}

// NewCreateReviewUseCase 创建书评用例
func NewCreateReviewUseCase(reviewRepo review.Repository, bookRepo book.Repository, userRepo user.Repository) *CreateReviewUseCase {
	return &CreateReviewUseCase{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
	}
}

// CreateReviewRequest 创建书评请求DTO
type CreateReviewRequest struct {
	UserID  uint // 从JWT中提取
	BookID  uint
	Rating  int
	Comment string
}

// ReviewDetail 书评DTO
type ReviewDetail struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	BookID    uint      `json:"book_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Execute 执行创建书评
func (uc *CreateReviewUseCase) Execute(ctx context.Context, req CreateReviewRequest) (*ReviewDetail, error) {
	// 1. 用户和图书都必须存在
	if _, err := uc.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	// 2. 重复校验(并发下由唯一索引兜底)
	if _, err := uc.reviewRepo.FindByUserAndBook(ctx, req.UserID, req.BookID); err == nil {
		return nil, review.ErrReviewDuplicate
	}

	// 3. 创建实体(评分范围校验在工厂方法内)
	rev, err := review.NewReview(req.UserID, req.BookID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	// 4. 持久化
	if err := uc.reviewRepo.Create(ctx, rev); err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.ReviewsCreatedTotal)
	return toReviewDetail(rev), nil
}

// toReviewDetail 组装书评DTO
func toReviewDetail(rev *review.Review) *ReviewDetail {
	return &ReviewDetail{
		ID:        rev.ID,
		UserID:    rev.UserID,
		BookID:    rev.BookID,
		Rating:    rev.Rating,
		Comment:   rev.Comment,
		CreatedAt: rev.CreatedAt,
		UpdatedAt: rev.UpdatedAt,
	}
}
