package catalog

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
)

// CategoryUseCase 分类管理用例
type CategoryUseCase struct {
	categoryRepo catalog.CategoryRepository
	bookRepo     book.Repository
}

// NewCategoryUseCase 创建分类管理用例
func NewCategoryUseCase(categoryRepo catalog.CategoryRepository, bookRepo book.Repository) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		bookRepo:     bookRepo,
	}
}

// CategoryDetail 分类详情DTO
type CategoryDetail struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Create 创建分类
// 名称唯一性由数据库UNIQUE索引保证(冲突转换为ErrCategoryDuplicate)
func (uc *CategoryUseCase) Create(ctx context.Context, name string) (*CategoryDetail, error) {
	c := catalog.NewCategory(name)
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryDetail(c), nil
}

// Get 查询分类详情
func (uc *CategoryUseCase) Get(ctx context.Context, id uint) (*CategoryDetail, error) {
	c, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryDetail(c), nil
}

// List 查询全部分类
func (uc *CategoryUseCase) List(ctx context.Context) ([]*CategoryDetail, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]*CategoryDetail, len(categories))
	for i, c := range categories {
		details[i] = toCategoryDetail(c)
	}
	return details, nil
}

// Update 重命名分类
func (uc *CategoryUseCase) Update(ctx context.Context, id uint, name string) (*CategoryDetail, error) {
	c, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Rename(name)
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return toCategoryDetail(c), nil
}

// Delete 删除分类
// 删除守卫:分类下存在图书即拒绝
func (uc *CategoryUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := uc.bookRepo.CountByCategoryID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return catalog.ErrCategoryHasBooks
	}

	return uc.categoryRepo.Delete(ctx, id)
}

func toCategoryDetail(c *catalog.Category) *CategoryDetail {
	return &CategoryDetail{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
