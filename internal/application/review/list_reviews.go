package review

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
)

// ListReviewsUseCase 书评查询用例
// 覆盖:按图书分页查询(含平均分)、按用户分页查询
type ListReviewsUseCase struct {
	reviewRepo review.Repository
	bookRepo   book.Repository
}

// NewListReviewsUseCase 创建书评查询用例
func NewListReviewsUseCase(reviewRepo review.Repository, bookRepo book.Repository) *ListReviewsUseCase {
	return &ListReviewsUseCase{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

// BookReviewsResponse 图书书评响应DTO
type BookReviewsResponse struct {
	BookID        uint            `json:"book_id"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int64           `json:"review_count"`
	Reviews       []*ReviewDetail `json:"reviews"`
}

// ByBook 查询图书的书评(分页,带平均分汇总)
func (uc *ListReviewsUseCase) ByBook(ctx context.Context, bookID uint, page, pageSize int) (*BookReviewsResponse, int64, error) {
	normalizePage(&page, &pageSize)

	// 图书必须存在(对不存在的图书返回404而非空列表)
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := uc.reviewRepo.ListByBookID(ctx, bookID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	avg, count, err := uc.reviewRepo.AverageByBookID(ctx, bookID)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*ReviewDetail, len(reviews))
	for i, rev := range reviews {
		details[i] = toReviewDetail(rev)
	}

	return &BookReviewsResponse{
		BookID:        bookID,
		AverageRating: avg,
		ReviewCount:   count,
		Reviews:       details,
	}, total, nil
}

// ByUser 查询用户的全部书评(分页)
func (uc *ListReviewsUseCase) ByUser(ctx context.Context, userID uint, page, pageSize int) ([]*ReviewDetail, int64, error) {
	normalizePage(&page, &pageSize)

	reviews, total, err := uc.reviewRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*ReviewDetail, len(reviews))
	for i, rev := range reviews {
		details[i] = toReviewDetail(rev)
	}

	return details, total, nil
}

// normalizePage 分页参数兜底（页码从1开始，每页最多100条）
func normalizePage(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = 10
	}
	if *pageSize > 100 {
		*pageSize = 100
	}
}
