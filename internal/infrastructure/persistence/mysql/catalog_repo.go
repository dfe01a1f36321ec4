package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// =========================================
// 作者仓储
// =========================================

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) catalog.AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *catalog.Author) error {
	model := &AuthorModel{
		Name:      a.Name,
		Biography: a.Biography,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*catalog.Author, error) {
	var model AuthorModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

func (r *authorRepository) FindByIDs(ctx context.Context, ids []uint) ([]*catalog.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []AuthorModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询作者失败")
	}
	authors := make([]*catalog.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

func (r *authorRepository) Update(ctx context.Context, a *catalog.Author) error {
	err := r.db.WithContext(ctx).Model(&AuthorModel{}).Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"name":      a.Name,
			"biography": a.Biography,
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新作者失败")
	}
	return nil
}

func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrAuthorNotFound
	}
	return nil
}

func (r *authorRepository) List(ctx context.Context, keyword string, page, pageSize int) ([]*catalog.Author, int64, error) {
	var models []AuthorModel
	var total int64

	query := r.db.WithContext(ctx).Model(&AuthorModel{})
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者总数失败")
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Limit(pageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*catalog.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, total, nil
}

func toAuthorEntity(model *AuthorModel) *catalog.Author {
	return &catalog.Author{
		ID:        model.ID,
		Name:      model.Name,
		Biography: model.Biography,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// =========================================
// 分类仓储
// =========================================

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) catalog.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	model := &CategoryModel{Name: c.Name}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// 分类名称有唯一索引
		if isDuplicateError(err) {
			return catalog.ErrCategoryDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*catalog.Category, error) {
	var model CategoryModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]*catalog.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []CategoryModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询分类失败")
	}
	categories := make([]*catalog.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	err := r.db.WithContext(ctx).Model(&CategoryModel{}).Where("id = ?", c.ID).
		Update("name", c.Name).Error
	if err != nil {
		if isDuplicateError(err) {
			return catalog.ErrCategoryDuplicate
		}
		return apperrors.Wrap(err, "更新分类失败")
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&CategoryModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	var models []CategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}
	categories := make([]*catalog.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, nil
}

func toCategoryEntity(model *CategoryModel) *catalog.Category {
	return &catalog.Category{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// =========================================
// 出版社仓储
// =========================================

type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(db *gorm.DB) catalog.PublisherRepository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(ctx context.Context, p *catalog.Publisher) error {
	model := &PublisherModel{
		Name:    p.Name,
		Address: p.Address,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// 出版社名称有唯一索引
		if isDuplicateError(err) {
			return catalog.ErrPublisherDuplicate
		}
		return apperrors.Wrap(err, "创建出版社失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *publisherRepository) FindByID(ctx context.Context, id uint) (*catalog.Publisher, error) {
	var model PublisherModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPublisherNotFound
		}
		return nil, apperrors.Wrap(err, "查询出版社失败")
	}
	return toPublisherEntity(&model), nil
}

func (r *publisherRepository) Update(ctx context.Context, p *catalog.Publisher) error {
	err := r.db.WithContext(ctx).Model(&PublisherModel{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":    p.Name,
			"address": p.Address,
		}).Error
	if err != nil {
		if isDuplicateError(err) {
			return catalog.ErrPublisherDuplicate
		}
		return apperrors.Wrap(err, "更新出版社失败")
	}
	return nil
}

func (r *publisherRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&PublisherModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除出版社失败")
	}
	if result.RowsAffected == 0 {
		return catalog.ErrPublisherNotFound
	}
	return nil
}

func (r *publisherRepository) List(ctx context.Context, keyword string, page, pageSize int) ([]*catalog.Publisher, int64, error) {
	var models []PublisherModel
	var total int64

	query := r.db.WithContext(ctx).Model(&PublisherModel{})
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询出版社总数失败")
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Limit(pageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询出版社列表失败")
	}

	publishers := make([]*catalog.Publisher, len(models))
	for i := range models {
		publishers[i] = toPublisherEntity(&models[i])
	}
	return publishers, total, nil
}

func toPublisherEntity(model *PublisherModel) *catalog.Publisher {
	return &catalog.Publisher{
		ID:        model.ID,
		Name:      model.Name,
		Address:   model.Address,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
