package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
)

// UpdateBookUseCase 更新图书用例
// 设计说明:Patch语义,指针为nil的字段保持不变,
// 关联列表(作者/分类)传了就全量替换,不传保持不变
type UpdateBookUseCase struct {
	bookRepo      book.Repository
	authorRepo    catalog.AuthorRepository
	categoryRepo  catalog.CategoryRepository
	publisherRepo catalog.PublisherRepository
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(
	bookRepo book.Repository,
	authorRepo catalog.AuthorRepository,
	categoryRepo catalog.CategoryRepository,
	publisherRepo catalog.PublisherRepository,
) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookRepo:      bookRepo,
		authorRepo:    authorRepo,
		categoryRepo:  categoryRepo,
		publisherRepo: publisherRepo,
	}
}

// UpdateBookRequest 更新图书请求DTO(Patch语义)
// SetPublisher为true时才应用PublisherID(nil=清除出版社关联),
// 单靠一个指针区分不了"不修改"和"清空"
type UpdateBookRequest struct {
	Title           *string
	ISBN            *string
	PublicationYear *int
	Description     *string
	CoverImageURL   *string
	FilePath        *string
	SetPublisher    bool
	PublisherID     *uint
	AuthorIDs       []uint // nil=不修改, 空切片=清空
	CategoryIDs     []uint // nil=不修改, 空切片=清空
}

// Execute 执行更新图书
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req UpdateBookRequest) (*BookDetail, error) {
	// 1. 查找现有图书
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 格式校验(只校验被修改的字段)
	if req.ISBN != nil {
		if err := book.ValidateISBN(*req.ISBN); err != nil {
			return nil, err
		}
		normalized := book.NormalizeISBN(*req.ISBN)
		req.ISBN = &normalized
	}
	if req.PublicationYear != nil {
		if err := book.ValidatePublicationYear(*req.PublicationYear); err != nil {
			return nil, err
		}
	}

	// 3. 关联引用校验(只校验被修改的关联)
	var checkPublisher *uint
	if req.SetPublisher {
		checkPublisher = req.PublisherID
	}
	if err := resolveReferences(ctx, uc.authorRepo, uc.categoryRepo, uc.publisherRepo,
		req.AuthorIDs, req.CategoryIDs, checkPublisher); err != nil {
		return nil, err
	}

	// 4. 应用变更
	b.UpdateInfo(req.Title, req.ISBN, req.PublicationYear,
		req.Description, req.CoverImageURL, req.FilePath)
	if req.SetPublisher {
		b.ChangePublisher(req.PublisherID)
	}
	if req.AuthorIDs != nil {
		b.ReplaceAuthors(uniqueIDs(req.AuthorIDs))
	}
	if req.CategoryIDs != nil {
		b.ReplaceCategories(uniqueIDs(req.CategoryIDs))
	}

	// 5. 持久化(ISBN冲突由数据库唯一索引兜底)
	if err := uc.bookRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	return assembleDetail(ctx, b, uc.authorRepo, uc.categoryRepo, uc.publisherRepo, nil)
}
