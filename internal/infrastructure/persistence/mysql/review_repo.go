package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/review"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// reviewRepository 书评仓储实现(MySQL)
// 设计说明:
// 1. (user_id, book_id)唯一索引保证一人一书一评,
//    并发创建时由数据库兜底,冲突转换为ErrReviewDuplicate
// 2. 平均分/分布等聚合查询直接用SQL聚合函数,不在内存里算
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 创建书评
func (r *reviewRepository) Create(ctx context.Context, rev *review.Review) error {
	model := &ReviewModel{
		UserID:  rev.UserID,
		BookID:  rev.BookID,
		Rating:  rev.Rating,
		Comment: rev.Comment,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrReviewDuplicate
		}
		return apperrors.Wrap(err, "创建书评失败")
	}

	rev.ID = model.ID
	rev.CreatedAt = model.CreatedAt
	rev.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找书评
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询书评失败")
	}

	return toReviewEntity(&model), nil
}

// FindByUserAndBook 查找用户对某本书的书评
func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询书评失败")
	}

	return toReviewEntity(&model), nil
}

// Update 更新书评
func (r *reviewRepository) Update(ctx context.Context, rev *review.Review) error {
	err := r.db.WithContext(ctx).Model(&ReviewModel{}).Where("id = ?", rev.ID).
		Updates(map[string]interface{}{
			"rating":  rev.Rating,
			"comment": rev.Comment,
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新书评失败")
	}
	return nil
}

// Delete 删除书评
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书评失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

// DeleteByBookID 删除图书的全部书评(图书删除时级联清理)
// 教学要点:与图书删除在同一事务内执行,通过getDB参与事务
func (r *reviewRepository) DeleteByBookID(ctx context.Context, bookID uint) error {
	err := r.getDB(ctx).Where("book_id = ?", bookID).Delete(&ReviewModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "删除图书书评失败")
	}
	return nil
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *reviewRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// ListByBookID 查询图书的书评(分页,按创建时间倒序)
func (r *reviewRepository) ListByBookID(ctx context.Context, bookID uint, page, pageSize int) ([]*review.Review, int64, error) {
	var models []ReviewModel
	var total int64

	query := r.db.WithContext(ctx).Model(&ReviewModel{}).Where("book_id = ?", bookID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评列表失败")
	}

	return toReviewEntities(models), total, nil
}

// ListByUserID 查询用户的全部书评(分页)
func (r *reviewRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*review.Review, int64, error) {
	var models []ReviewModel
	var total int64

	query := r.db.WithContext(ctx).Model(&ReviewModel{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评列表失败")
	}

	return toReviewEntities(models), total, nil
}

// AverageByBookID 图书的平均评分与书评数
// 无书评时返回(0, 0, nil)
func (r *reviewRepository) AverageByBookID(ctx context.Context, bookID uint) (float64, int64, error) {
	var result struct {
		Average float64
		Count   int64
	}

	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("book_id = ?", bookID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "统计图书评分失败")
	}

	return result.Average, result.Count, nil
}

// Count 书评总数
func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ReviewModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计书评总数失败")
	}
	return total, nil
}

// Distribution 全站评分分布
func (r *reviewRepository) Distribution(ctx context.Context) (review.RatingDistribution, error) {
	var rows []struct {
		Rating int
		Count  int64
	}

	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计评分分布失败")
	}

	// 1-5星全部填充,没有数据的星级计数为0
	dist := review.RatingDistribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		dist[row.Rating] = row.Count
	}

	return dist, nil
}

// TopRated 平均分达到minRating的图书Top N
func (r *reviewRepository) TopRated(ctx context.Context, minRating float64, limit int) ([]*review.BookRating, error) {
	var results []*review.BookRating
	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Select("book_id, AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Group("book_id").
		Having("AVG(rating) >= ?", minRating).
		Order("average_rating DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计高分图书失败")
	}
	return results, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Rating:    model.Rating,
		Comment:   model.Comment,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toReviewEntities 批量转换
func toReviewEntities(models []ReviewModel) []*review.Review {
	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews
}
