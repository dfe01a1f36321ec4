package catalog

import (
	"context"
)

// AuthorRepository 作者仓储接口
// 教学要点:FindByIDs用于图书创建/更新时批量校验作者是否存在,
// 一次IN查询代替N次单查,返回数量与请求数量不一致即存在无效ID
type AuthorRepository interface {
	Create(ctx context.Context, author *Author) error

	// FindByID 不存在时返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindByIDs 批量查询(只返回存在的记录,不报错)
	FindByIDs(ctx context.Context, ids []uint) ([]*Author, error)

	Update(ctx context.Context, author *Author) error

	Delete(ctx context.Context, id uint) error

	// List 分页查询,keyword按姓名模糊匹配
	List(ctx context.Context, keyword string, page, pageSize int) ([]*Author, int64, error)
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	// Create 名称重复时返回ErrCategoryDuplicate
	Create(ctx context.Context, category *Category) error

	// FindByID 不存在时返回ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByIDs 批量查询(只返回存在的记录,不报错)
	FindByIDs(ctx context.Context, ids []uint) ([]*Category, error)

	Update(ctx context.Context, category *Category) error

	Delete(ctx context.Context, id uint) error

	// List 全量查询(分类数量有限,不分页)
	List(ctx context.Context) ([]*Category, error)
}

// PublisherRepository 出版社仓储接口
type PublisherRepository interface {
	// Create 名称重复时返回ErrPublisherDuplicate
	Create(ctx context.Context, publisher *Publisher) error

	// FindByID 不存在时返回ErrPublisherNotFound
	FindByID(ctx context.Context, id uint) (*Publisher, error)

	Update(ctx context.Context, publisher *Publisher) error

	Delete(ctx context.Context, id uint) error

	// List 分页查询,keyword按名称模糊匹配
	List(ctx context.Context, keyword string, page, pageSize int) ([]*Publisher, int64, error)
}
