package catalog

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
)

// AuthorUseCase 作者管理用例
// 设计说明:删除守卫依赖book聚合的计数查询,
// 跨聚合编排放在应用层
type AuthorUseCase struct {
	authorRepo catalog.AuthorRepository
	bookRepo   book.Repository
}

// NewAuthorUseCase 创建作者管理用例
func NewAuthorUseCase(authorRepo catalog.AuthorRepository, bookRepo book.Repository) *AuthorUseCase {
	return &AuthorUseCase{
		authorRepo: authorRepo,
		bookRepo:   bookRepo,
	}
}

// AuthorDetail 作者详情DTO
type AuthorDetail struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Biography string    `json:"biography"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAuthorRequest 创建作者请求
type CreateAuthorRequest struct {
	Name      string
	Biography string
}

// Create 创建作者
func (uc *AuthorUseCase) Create(ctx context.Context, req CreateAuthorRequest) (*AuthorDetail, error) {
	a := catalog.NewAuthor(req.Name, req.Biography)
	if err := uc.authorRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAuthorDetail(a), nil
}

// Get 查询作者详情
func (uc *AuthorUseCase) Get(ctx context.Context, id uint) (*AuthorDetail, error) {
	a, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAuthorDetail(a), nil
}

// List 分页查询作者列表
func (uc *AuthorUseCase) List(ctx context.Context, keyword string, page, pageSize int) ([]*AuthorDetail, int64, error) {
	normalizePage(&page, &pageSize)

	authors, total, err := uc.authorRepo.List(ctx, keyword, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*AuthorDetail, len(authors))
	for i, a := range authors {
		details[i] = toAuthorDetail(a)
	}
	return details, total, nil
}

// UpdateAuthorRequest 更新作者请求(Patch语义:nil表示不修改)
type UpdateAuthorRequest struct {
	Name      *string
	Biography *string
}

// Update 更新作者
func (uc *AuthorUseCase) Update(ctx context.Context, id uint, req UpdateAuthorRequest) (*AuthorDetail, error) {
	a, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.UpdateInfo(req.Name, req.Biography)
	if err := uc.authorRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	return toAuthorDetail(a), nil
}

// Delete 删除作者
// 删除守卫:名下存在图书即拒绝
func (uc *AuthorUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.authorRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := uc.bookRepo.CountByAuthorID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return catalog.ErrAuthorHasBooks
	}

	return uc.authorRepo.Delete(ctx, id)
}

func toAuthorDetail(a *catalog.Author) *AuthorDetail {
	return &AuthorDetail{
		ID:        a.ID,
		Name:      a.Name,
		Biography: a.Biography,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
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
