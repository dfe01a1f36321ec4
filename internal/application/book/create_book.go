package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
)

// CreateBookUseCase 创建图书用例
// 设计说明:
// 1. 跨聚合校验（作者/分类/出版社是否存在）放在应用层,
//    domain层各聚合互不引用
// 2. 作者/分类用批量IN查询校验:返回数量与请求数量不一致即存在无效ID,
//    一次往返代替N次单查
type CreateBookUseCase struct {
	bookRepo      book.Repository
	authorRepo    catalog.AuthorRepository
	categoryRepo  catalog.CategoryRepository
	publisherRepo catalog.PublisherRepository
}

// NewCreateBookUseCase 创建图书用例
func NewCreateBookUseCase(
	bookRepo book.Repository,
	authorRepo catalog.AuthorRepository,
	categoryRepo catalog.CategoryRepository,
	publisherRepo catalog.PublisherRepository,
) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookRepo:      bookRepo,
		authorRepo:    authorRepo,
		categoryRepo:  categoryRepo,
		publisherRepo: publisherRepo,
	}
}

// CreateBookRequest 创建图书请求DTO
type CreateBookRequest struct {
	Title           string
	ISBN            string
	PublicationYear int
	Description     string
	CoverImageURL   string
	FilePath        string
	PublisherID     *uint
	AuthorIDs       []uint
	CategoryIDs     []uint
}

// Execute 执行创建图书
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookDetail, error) {
	// 1. 格式校验
	if err := book.ValidateISBN(req.ISBN); err != nil {
		return nil, err
	}
	if err := book.ValidatePublicationYear(req.PublicationYear); err != nil {
		return nil, err
	}
	isbn := book.NormalizeISBN(req.ISBN)

	// 2. 关联引用校验
	if err := resolveReferences(ctx, uc.authorRepo, uc.categoryRepo, uc.publisherRepo,
		req.AuthorIDs, req.CategoryIDs, req.PublisherID); err != nil {
		return nil, err
	}

	// 3. 创建实体并持久化
	// ISBN唯一性由数据库UNIQUE索引兜底(Repository转换为ErrISBNDuplicate)
	b := book.NewBook(req.Title, isbn, req.PublicationYear, req.Description,
		req.CoverImageURL, req.FilePath, req.PublisherID, req.AuthorIDs, req.CategoryIDs)

	if err := uc.bookRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	return assembleDetail(ctx, b, uc.authorRepo, uc.categoryRepo, uc.publisherRepo, nil)
}

// resolveReferences 批量校验作者/分类/出版社引用
// 任一引用无效即整体失败,返回对应的NotFound错误
func resolveReferences(
	ctx context.Context,
	authorRepo catalog.AuthorRepository,
	categoryRepo catalog.CategoryRepository,
	publisherRepo catalog.PublisherRepository,
	authorIDs, categoryIDs []uint,
	publisherID *uint,
) error {
	if len(authorIDs) > 0 {
		authors, err := authorRepo.FindByIDs(ctx, uniqueIDs(authorIDs))
		if err != nil {
			return err
		}
		if len(authors) != len(uniqueIDs(authorIDs)) {
			return catalog.ErrAuthorNotFound
		}
	}

	if len(categoryIDs) > 0 {
		categories, err := categoryRepo.FindByIDs(ctx, uniqueIDs(categoryIDs))
		if err != nil {
			return err
		}
		if len(categories) != len(uniqueIDs(categoryIDs)) {
			return catalog.ErrCategoryNotFound
		}
	}

	if publisherID != nil {
		if _, err := publisherRepo.FindByID(ctx, *publisherID); err != nil {
			return err
		}
	}

	return nil
}

// uniqueIDs 去重(请求里重复传同一个ID不算错误)
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
