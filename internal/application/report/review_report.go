package report

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
)

// topRatedMinRating 高分榜单的平均分门槛
const topRatedMinRating = 4.0

// topRatedLimit 高分榜单条数
const topRatedLimit = 5

// ReviewReportUseCase 书评报表用例(管理端)
// 输出:全站评分分布 + 高分图书榜单(平均分>=4.0的Top 5)
type ReviewReportUseCase struct {
	reviewRepo review.Repository
	bookRepo   book.Repository
}

// NewReviewReportUseCase 创建书评报表用例
func NewReviewReportUseCase(reviewRepo review.Repository, bookRepo book.Repository) *ReviewReportUseCase {
	return &ReviewReportUseCase{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

// ReviewReportResponse 书评报表响应DTO
type ReviewReportResponse struct {
	TotalReviews int64           `json:"total_reviews"`
	Distribution map[int]int64   `json:"distribution"` // 星级 → 数量(1-5全部填充)
	TopRated     []*TopRatedBook `json:"top_rated"`
}

// TopRatedBook 高分图书榜单项
type TopRatedBook struct {
	BookID        uint    `json:"book_id"`
	Title         string  `json:"title"`
	ISBN          string  `json:"isbn"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// Execute 生成书评报表
func (uc *ReviewReportUseCase) Execute(ctx context.Context) (*ReviewReportResponse, error) {
	total, err := uc.reviewRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	dist, err := uc.reviewRepo.Distribution(ctx)
	if err != nil {
		return nil, err
	}

	topRated, err := uc.topRated(ctx)
	if err != nil {
		return nil, err
	}

	return &ReviewReportResponse{
		TotalReviews: total,
		Distribution: dist,
		TopRated:     topRated,
	}, nil
}

// topRated 组装高分图书榜单
func (uc *ReviewReportUseCase) topRated(ctx context.Context) ([]*TopRatedBook, error) {
	ratings, err := uc.reviewRepo.TopRated(ctx, topRatedMinRating, topRatedLimit)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return []*TopRatedBook{}, nil
	}

	ids := make([]uint, len(ratings))
	for i, r := range ratings {
		ids[i] = r.BookID
	}

	books, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	result := make([]*TopRatedBook, 0, len(ratings))
	for _, r := range ratings {
		b, ok := byID[r.BookID]
		if !ok {
			continue
		}
		result = append(result, &TopRatedBook{
			BookID:        b.ID,
			Title:         b.Title,
			ISBN:          b.ISBN,
			AverageRating: r.AverageRating,
			ReviewCount:   r.ReviewCount,
		})
	}

	return result, nil
}
