package review

import (
	"context"
)

// RatingDistribution 评分分布(报表用):星级 → 数量
type RatingDistribution map[int]int64

// Repository 书评仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建书评
	// 注意:违反(user_id, book_id)唯一索引时,应返回ErrReviewDuplicate
	Create(ctx context.Context, review *Review) error

	// FindByID 根据ID查找书评
	// 如果不存在,返回ErrReviewNotFound
	FindByID(ctx context.Context, id uint) (*Review, error)

	// FindByUserAndBook 查找用户对某本书的书评(重复校验用)
	// 如果不存在,返回ErrReviewNotFound
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Review, error)

	// Update 更新书评
	Update(ctx context.Context, review *Review) error

	// Delete 删除书评
	Delete(ctx context.Context, id uint) error

	// DeleteByBookID 删除图书的全部书评(图书删除时级联清理)
	DeleteByBookID(ctx context.Context, bookID uint) error

	// ListByBookID 查询图书的书评(分页,按创建时间倒序)
	ListByBookID(ctx context.Context, bookID uint, page, pageSize int) ([]*Review, int64, error)

	// ListByUserID 查询用户的全部书评(分页)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Review, int64, error)

	// AverageByBookID 图书的平均评分与书评数
	// 无书评时返回(0, 0, nil),不报错
	AverageByBookID(ctx context.Context, bookID uint) (float64, int64, error)

	// Count 书评总数(仪表盘用)
	Count(ctx context.Context) (int64, error)

	// Distribution 全站评分分布(报表用)
	Distribution(ctx context.Context) (RatingDistribution, error)

	// TopRated 平均分达到minRating的图书Top N(按平均分降序)
	// 返回book_id与平均分,图书详情由应用层组装
	TopRated(ctx context.Context, minRating float64, limit int) ([]*BookRating, error)
}

// BookRating 图书评分聚合结果
type BookRating struct {
	BookID        uint    `json:"book_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}
