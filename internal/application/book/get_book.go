package book

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/internal/domain/review"
)

// GetBookUseCase 图书详情用例
// 设计说明:详情页组装完整视图(作者/分类/出版社名称、评分汇总),
// 跨聚合的组装是应用层的职责
type GetBookUseCase struct {
	bookRepo      book.Repository
	authorRepo    catalog.AuthorRepository
	categoryRepo  catalog.CategoryRepository
	publisherRepo catalog.PublisherRepository
	reviewRepo    review.Repository
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(
	bookRepo book.Repository,
	authorRepo catalog.AuthorRepository,
	categoryRepo catalog.CategoryRepository,
	publisherRepo catalog.PublisherRepository,
	reviewRepo review.Repository,
) *GetBookUseCase {
	return &GetBookUseCase{
		bookRepo:      bookRepo,
		authorRepo:    authorRepo,
		categoryRepo:  categoryRepo,
		publisherRepo: publisherRepo,
		reviewRepo:    reviewRepo,
	}
}

// Execute 查询图书详情
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetail, error) {
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return assembleDetail(ctx, b, uc.authorRepo, uc.categoryRepo, uc.publisherRepo, uc.reviewRepo)
}

// =========================================
// 共享DTO与组装逻辑
// =========================================

// BookDetail 图书详情DTO
type BookDetail struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	ISBN            string         `json:"isbn"`
	PublicationYear int            `json:"publication_year"`
	Description     string         `json:"description"`
	CoverImageURL   string         `json:"cover_image_url"`
	FilePath        string         `json:"file_path,omitempty"`
	Publisher       *PublisherInfo `json:"publisher,omitempty"`
	Authors         []AuthorInfo   `json:"authors"`
	Categories      []CategoryInfo `json:"categories"`
	AverageRating   float64        `json:"average_rating"`
	ReviewCount     int64          `json:"review_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// AuthorInfo 作者摘要
type AuthorInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryInfo 分类摘要
type CategoryInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PublisherInfo 出版社摘要
type PublisherInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// assembleDetail 组装图书详情视图
// reviewRepo为nil时跳过评分汇总(创建/更新响应不需要)
func assembleDetail(
	ctx context.Context,
	b *book.Book,
	authorRepo catalog.AuthorRepository,
	categoryRepo catalog.CategoryRepository,
	publisherRepo catalog.PublisherRepository,
	reviewRepo review.Repository,
) (*BookDetail, error) {
	detail := &BookDetail{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
		FilePath:        b.FilePath,
		Authors:         []AuthorInfo{},
		Categories:      []CategoryInfo{},
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if len(b.AuthorIDs) > 0 {
		authors, err := authorRepo.FindByIDs(ctx, b.AuthorIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range authors {
			detail.Authors = append(detail.Authors, AuthorInfo{ID: a.ID, Name: a.Name})
		}
	}

	if len(b.CategoryIDs) > 0 {
		categories, err := categoryRepo.FindByIDs(ctx, b.CategoryIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range categories {
			detail.Categories = append(detail.Categories, CategoryInfo{ID: c.ID, Name: c.Name})
		}
	}

	if b.PublisherID != nil {
		p, err := publisherRepo.FindByID(ctx, *b.PublisherID)
		if err != nil {
			return nil, err
		}
		detail.Publisher = &PublisherInfo{ID: p.ID, Name: p.Name}
	}

	if reviewRepo != nil {
		avg, count, err := reviewRepo.AverageByBookID(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		detail.AverageRating = avg
		detail.ReviewCount = count
	}

	return detail, nil
}
