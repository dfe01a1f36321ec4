package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
)

// SearchBooksUseCase 图书搜索用例
// 设计说明:
// 1. Search:多条件分页搜索(读者端),各条件AND组合
// 2. AdvancedSearch:不分页的高级搜索(管理端),
//    支持按"当前被某用户在借"过滤(跨loans表)
type SearchBooksUseCase struct {
	bookRepo     book.Repository
	authorRepo   catalog.AuthorRepository
	categoryRepo catalog.CategoryRepository
}

// NewSearchBooksUseCase 创建图书搜索用例
func NewSearchBooksUseCase(
	bookRepo book.Repository,
	authorRepo catalog.AuthorRepository,
	categoryRepo catalog.CategoryRepository,
) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
	}
}

// SearchBooksRequest 搜索请求DTO
type SearchBooksRequest struct {
	Title         string
	AuthorName    string
	CategoryName  string
	PublisherName string
	YearFrom      int
	YearTo        int
	ISBN          string
	Page          int
	PageSize      int
}

// Execute 执行多条件分页搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) ([]*BookSummary, int64, error) {
	normalizePage(&req.Page, &req.PageSize)

	if req.ISBN != "" {
		req.ISBN = book.NormalizeISBN(req.ISBN)
	}

	books, total, err := uc.bookRepo.Search(ctx, book.SearchParams{
		Title:         req.Title,
		AuthorName:    req.AuthorName,
		CategoryName:  req.CategoryName,
		PublisherName: req.PublisherName,
		YearFrom:      req.YearFrom,
		YearTo:        req.YearTo,
		ISBN:          req.ISBN,
		Page:          req.Page,
		PageSize:      req.PageSize,
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

// AdvancedSearchRequest 高级搜索请求DTO(管理端)
type AdvancedSearchRequest struct {
	Title            string
	AuthorName       string
	CategoryName     string
	PublisherName    string
	BorrowedByUserID uint
}

// ExecuteAdvanced 执行高级搜索(不分页)
func (uc *SearchBooksUseCase) ExecuteAdvanced(ctx context.Context, req AdvancedSearchRequest) ([]*BookSummary, error) {
	books, err := uc.bookRepo.AdvancedSearch(ctx, book.AdvancedSearchParams{
		Title:            req.Title,
		AuthorName:       req.AuthorName,
		CategoryName:     req.CategoryName,
		PublisherName:    req.PublisherName,
		BorrowedByUserID: req.BorrowedByUserID,
	})
	if err != nil {
		return nil, err
	}

	return assembleSummaries(ctx, books, uc.authorRepo, uc.categoryRepo)
}
