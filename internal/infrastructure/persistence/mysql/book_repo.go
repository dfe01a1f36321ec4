package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 多对多关联(作者/分类)通过GORM Association维护,
//    领域实体只携带ID列表,关联对象的组装是应用层的职责
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书(含作者/分类关联)
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
		FilePath:        b.FilePath,
		PublisherID:     b.PublisherID,
	}

	db := r.getDB(ctx)

	// 先插入主表,再维护关联表
	// 教学要点:不通过model.Authors直接Create,
	// 避免GORM对只有ID的关联对象做upsert覆盖已有数据
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	if err := r.replaceAssociations(db, model, b.AuthorIDs, b.CategoryIDs); err != nil {
		return err
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书(含关联ID列表)
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).Preload("Authors").Preload("Categories").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).Preload("Authors").Preload("Categories").
		Where("isbn = ?", isbn).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书(关联关系全量替换)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	db := r.getDB(ctx)

	// 标量字段更新
	// 使用map避免GORM忽略零值字段(如清空描述)
	result := db.Model(&BookModel{ID: b.ID}).Updates(map[string]interface{}{
		"title":            b.Title,
		"isbn":             b.ISBN,
		"publication_year": b.PublicationYear,
		"description":      b.Description,
		"cover_image_url":  b.CoverImageURL,
		"file_path":        b.FilePath,
		"publisher_id":     b.PublisherID,
	})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(result.Error, "更新图书失败")
	}

	return r.replaceAssociations(db, &BookModel{ID: b.ID}, b.AuthorIDs, b.CategoryIDs)
}

// Delete 删除图书(连带删除关联关系)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)

	model := &BookModel{ID: id}

	// 先清空关联表,再删除主记录
	if err := db.Model(model).Association("Authors").Clear(); err != nil {
		return apperrors.Wrap(err, "清除作者关联失败")
	}
	if err := db.Model(model).Association("Categories").Clear(); err != nil {
		return apperrors.Wrap(err, "清除分类关联失败")
	}

	result := db.Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询图书列表
// 注意:Count和Find必须各自构建查询,
// Distinct("books.id")会把select列表固化到builder上,
// 复用同一个builder会导致Find只查出id列
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	if err := r.buildListQuery(ctx, params).
		Distinct("books.id").Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	query := r.buildListQuery(ctx, params)

	// 排序
	switch params.SortBy {
	case "title_asc":
		query = query.Order("books.title ASC")
	case "year_desc":
		query = query.Order("books.publication_year DESC")
	default:
		query = query.Order("books.created_at DESC")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Distinct().Preload("Authors").Preload("Categories").
		Limit(params.PageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	return toBookEntities(models), total, nil
}

// buildListQuery 构建列表查询条件
func (r *bookRepository) buildListQuery(ctx context.Context, params book.ListParams) *gorm.DB {
	query := r.getDB(ctx).Model(&BookModel{})

	// 关键词搜索(匹配书名、描述)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("books.title LIKE ? OR books.description LIKE ?", keyword, keyword)
	}

	if params.CategoryID > 0 {
		query = query.Joins("JOIN book_categories bc ON bc.book_id = books.id").
			Where("bc.category_id = ?", params.CategoryID)
	}

	if params.AuthorID > 0 {
		query = query.Joins("JOIN book_authors ba ON ba.book_id = books.id").
			Where("ba.author_id = ?", params.AuthorID)
	}

	return query
}

// Search 多条件分页搜索(各条件为AND关系)
// Count和Find各走一次buildSearchQuery,原因同List
func (r *bookRepository) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	if err := r.buildSearchQuery(ctx, params).
		Distinct("books.id").Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "搜索图书总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := r.buildSearchQuery(ctx, params).
		Distinct().Preload("Authors").Preload("Categories").
		Order("books.created_at DESC").
		Limit(params.PageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "搜索图书失败")
	}

	return toBookEntities(models), total, nil
}

// buildSearchQuery 构建搜索条件
// 文本条件均为部分匹配,MySQL默认排序规则不区分大小写
func (r *bookRepository) buildSearchQuery(ctx context.Context, params book.SearchParams) *gorm.DB {
	query := r.getDB(ctx).Model(&BookModel{})

	if params.Title != "" {
		query = query.Where("books.title LIKE ?", "%"+params.Title+"%")
	}
	if params.ISBN != "" {
		query = query.Where("books.isbn = ?", params.ISBN)
	}
	if params.AuthorName != "" {
		query = query.Joins("JOIN book_authors ba ON ba.book_id = books.id").
			Joins("JOIN authors a ON a.id = ba.author_id").
			Where("a.name LIKE ?", "%"+params.AuthorName+"%")
	}
	if params.CategoryName != "" {
		query = query.Joins("JOIN book_categories bc ON bc.book_id = books.id").
			Joins("JOIN categories c ON c.id = bc.category_id").
			Where("c.name LIKE ?", "%"+params.CategoryName+"%")
	}
	if params.PublisherName != "" {
		query = query.Joins("JOIN publishers p ON p.id = books.publisher_id").
			Where("p.name LIKE ?", "%"+params.PublisherName+"%")
	}
	if params.YearFrom > 0 {
		query = query.Where("books.publication_year >= ?", params.YearFrom)
	}
	if params.YearTo > 0 {
		query = query.Where("books.publication_year <= ?", params.YearTo)
	}

	return query
}

// AdvancedSearch 高级搜索(不分页,管理端用)
// 教学要点:BorrowedByUserID条件需要关联loans表,
// 只匹配该用户当前在借(status=BORROWED)的图书
func (r *bookRepository) AdvancedSearch(ctx context.Context, params book.AdvancedSearchParams) ([]*book.Book, error) {
	var models []BookModel

	query := r.getDB(ctx).Model(&BookModel{})

	if params.Title != "" {
		query = query.Where("books.title LIKE ?", "%"+params.Title+"%")
	}
	if params.AuthorName != "" {
		query = query.Joins("JOIN book_authors ba ON ba.book_id = books.id").
			Joins("JOIN authors a ON a.id = ba.author_id").
			Where("a.name LIKE ?", "%"+params.AuthorName+"%")
	}
	if params.CategoryName != "" {
		query = query.Joins("JOIN book_categories bc ON bc.book_id = books.id").
			Joins("JOIN categories c ON c.id = bc.category_id").
			Where("c.name LIKE ?", "%"+params.CategoryName+"%")
	}
	if params.PublisherName != "" {
		query = query.Joins("JOIN publishers p ON p.id = books.publisher_id").
			Where("p.name LIKE ?", "%"+params.PublisherName+"%")
	}
	if params.BorrowedByUserID > 0 {
		query = query.Joins("JOIN loans l ON l.book_id = books.id").
			Where("l.user_id = ? AND l.status = ?", params.BorrowedByUserID, "BORROWED")
	}

	err := query.Distinct().Preload("Authors").Preload("Categories").
		Order("books.title ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "高级搜索失败")
	}

	return toBookEntities(models), nil
}

// LockByID 悲观锁查询图书(借书守卫用)
// SELECT FOR UPDATE锁定行
// 教学要点:必须在事务内调用(通过TxManager注入事务DB)
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := r.getDB(ctx)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// CountByPublisherID 统计出版社名下的图书数量
func (r *bookRepository) CountByPublisherID(ctx context.Context, publisherID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&BookModel{}).
		Where("publisher_id = ?", publisherID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计出版社图书数量失败")
	}
	return count, nil
}

// CountByAuthorID 统计作者名下的图书数量
func (r *bookRepository) CountByAuthorID(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Table("book_authors").
		Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计作者图书数量失败")
	}
	return count, nil
}

// CountByCategoryID 统计分类下的图书数量
func (r *bookRepository) CountByCategoryID(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Table("book_categories").
		Where("category_id = ?", categoryID).Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计分类图书数量失败")
	}
	return count, nil
}

// Count 图书总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&BookModel{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计图书总数失败")
	}
	return count, nil
}

// FindByIDs 批量查询图书(返回顺序与ids一致)
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []BookModel
	err := r.getDB(ctx).Preload("Authors").Preload("Categories").
		Where("id IN ?", ids).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	// 按传入顺序重排(榜单的顺序由调用方决定)
	byID := make(map[uint]*book.Book, len(models))
	for i := range models {
		byID[models[i].ID] = toBookEntity(&models[i])
	}
	books := make([]*book.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			books = append(books, b)
		}
	}

	return books, nil
}

// replaceAssociations 全量替换作者/分类关联
func (r *bookRepository) replaceAssociations(db *gorm.DB, model *BookModel, authorIDs, categoryIDs []uint) error {
	authors := make([]AuthorModel, len(authorIDs))
	for i, id := range authorIDs {
		authors[i] = AuthorModel{ID: id}
	}
	if err := db.Model(model).Omit("Authors.*").Association("Authors").Replace(authors); err != nil {
		return apperrors.Wrap(err, "更新作者关联失败")
	}

	categories := make([]CategoryModel, len(categoryIDs))
	for i, id := range categoryIDs {
		categories[i] = CategoryModel{ID: id}
	}
	if err := db.Model(model).Omit("Categories.*").Association("Categories").Replace(categories); err != nil {
		return apperrors.Wrap(err, "更新分类关联失败")
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	authorIDs := make([]uint, len(model.Authors))
	for i, a := range model.Authors {
		authorIDs[i] = a.ID
	}
	categoryIDs := make([]uint, len(model.Categories))
	for i, c := range model.Categories {
		categoryIDs[i] = c.ID
	}

	return &book.Book{
		ID:              model.ID,
		Title:           model.Title,
		ISBN:            model.ISBN,
		PublicationYear: model.PublicationYear,
		Description:     model.Description,
		CoverImageURL:   model.CoverImageURL,
		FilePath:        model.FilePath,
		PublisherID:     model.PublisherID,
		AuthorIDs:       authorIDs,
		CategoryIDs:     categoryIDs,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// toBookEntities 批量转换
func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
