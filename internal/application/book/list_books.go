package book

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
)

// ListBooksUseCase 图书列表用例
// 设计说明:列表项只带作者/分类名称摘要,不带评分汇总
// (列表页逐本书查平均分是N+1查询,评分只在详情页展示)
type ListBooksUseCase struct {
	bookRepo     book.Repository
	authorRepo   catalog.AuthorRepository
	categoryRepo catalog.CategoryRepository
}

// NewListBooksUseCase 创建图书列表用例
func NewListBooksUseCase(
	bookRepo book.Repository,
	authorRepo catalog.AuthorRepository,
	categoryRepo catalog.CategoryRepository,
) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
	}
}

// ListBooksRequest 图书列表请求DTO
type ListBooksRequest struct {
	Page       int
	PageSize   int
	Keyword    string
	CategoryID uint
	AuthorID   uint
	SortBy     string
}

// BookSummary 图书列表项DTO
type BookSummary struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	ISBN            string         `json:"isbn"`
	PublicationYear int            `json:"publication_year"`
	CoverImageURL   string         `json:"cover_image_url"`
	Authors         []AuthorInfo   `json:"authors"`
	Categories      []CategoryInfo `json:"categories"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Execute 执行图书列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]*BookSummary, int64, error) {
	normalizePage(&req.Page, &req.PageSize)

	books, total, err := uc.bookRepo.List(ctx, book.ListParams{
		Page:       req.Page,
		PageSize:   req.PageSize,
		Keyword:    req.Keyword,
		CategoryID: req.CategoryID,
		AuthorID:   req.AuthorID,
		SortBy:     req.SortBy,
	})
	if err != nil {
		return nil, 0, err
	}

	summaries, err := assembleSummaries(ctx, books, uc.authorRepo, uc.categoryRepo)
	if err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

// assembleSummaries 批量组装列表项(作者/分类名称一次性批量查询)
func assembleSummaries(
	ctx context.Context,
	books []*book.Book,
	authorRepo catalog.AuthorRepository,
	categoryRepo catalog.CategoryRepository,
) ([]*BookSummary, error) {
	// 1. 收集本页涉及的全部作者/分类ID
	authorIDSet := make(map[uint]struct{})
	categoryIDSet := make(map[uint]struct{})
	for _, b := range books {
		for _, id := range b.AuthorIDs {
			authorIDSet[id] = struct{}{}
		}
		for _, id := range b.CategoryIDs {
			categoryIDSet[id] = struct{}{}
		}
	}

	// 2. 批量查询名称(避免逐本书的N+1查询)
	authorNames := make(map[uint]string)
	if len(authorIDSet) > 0 {
		ids := make([]uint, 0, len(authorIDSet))
		for id := range authorIDSet {
			ids = append(ids, id)
		}
		authors, err := authorRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, a := range authors {
			authorNames[a.ID] = a.Name
		}
	}

	categoryNames := make(map[uint]string)
	if len(categoryIDSet) > 0 {
		ids := make([]uint, 0, len(categoryIDSet))
		for id := range categoryIDSet {
			ids = append(ids, id)
		}
		categories, err := categoryRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, c := range categories {
			categoryNames[c.ID] = c.Name
		}
	}

	// 3. 组装DTO
	summaries := make([]*BookSummary, len(books))
	for i, b := range books {
		summaries[i] = toBookSummary(b, authorNames, categoryNames)
	}

	return summaries, nil
}

// toBookSummary 组装单个列表项
func toBookSummary(b *book.Book, authorNames, categoryNames map[uint]string) *BookSummary {
	s := &BookSummary{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		CoverImageURL:   b.CoverImageURL,
		Authors:         []AuthorInfo{},
		Categories:      []CategoryInfo{},
		CreatedAt:       b.CreatedAt,
	}
	for _, id := range b.AuthorIDs {
		if name, ok := authorNames[id]; ok {
			s.Authors = append(s.Authors, AuthorInfo{ID: id, Name: name})
		}
	}
	for _, id := range b.CategoryIDs {
		if name, ok := categoryNames[id]; ok {
			s.Categories = append(s.Categories, CategoryInfo{ID: id, Name: name})
		}
	}
	return s
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
