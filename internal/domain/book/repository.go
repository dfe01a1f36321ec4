package book

import (
	"context"
)

// ListParams 列表查询参数
type ListParams struct {
	Page       int
	PageSize   int
	Keyword    string // 搜索关键词(匹配书名、描述)
	CategoryID uint   // 按分类过滤(0表示不过滤)
	AuthorID   uint   // 按作者过滤(0表示不过滤)
	SortBy     string // 排序字段(title_asc, year_desc, created_at_desc)
}

// SearchParams 多条件搜索参数(各条件为AND关系)
// 设计说明:零值表示该条件不生效,与Patch的指针语义不同,
// 搜索条件没有"显式传空"的需求,零值语义更简单
type SearchParams struct {
	Title         string // 书名模糊匹配
	AuthorName    string // 作者姓名模糊匹配(跨表)
	CategoryName  string // 分类名称模糊匹配(跨表)
	PublisherName string // 出版社名称模糊匹配(跨表)
	YearFrom      int    // 出版年份下界(含)
	YearTo        int    // 出版年份上界(含)
	ISBN          string // ISBN精确匹配
	Page          int
	PageSize      int
}

// AdvancedSearchParams 高级搜索参数(不分页,管理端用)
type AdvancedSearchParams struct {
	Title            string
	AuthorName       string
	CategoryName     string // 分类名称模糊匹配
	PublisherName    string // 出版社名称模糊匹配
	BorrowedByUserID uint   // 当前被此用户在借的图书(0表示不过滤)
}

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书(含作者/分类关联关系)
	// 注意:如果ISBN已存在,应返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书(含关联ID列表)
	// 如果不存在,返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书(含关联关系的全量替换)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(连带删除关联关系)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Search 多条件分页搜索
	Search(ctx context.Context, params SearchParams) ([]*Book, int64, error)

	// AdvancedSearch 高级搜索(不分页)
	AdvancedSearch(ctx context.Context, params AdvancedSearchParams) ([]*Book, error)

	// LockByID 悲观锁查询图书(借书时锁定图书行)
	// 使用SELECT FOR UPDATE锁定行,序列化并发借书请求
	// 必须在事务内调用,否则锁在语句结束时就释放了
	LockByID(ctx context.Context, id uint) (*Book, error)

	// CountByPublisherID 统计出版社名下的图书数量(删除守卫用)
	CountByPublisherID(ctx context.Context, publisherID uint) (int64, error)

	// CountByAuthorID 统计作者名下的图书数量(删除守卫用)
	CountByAuthorID(ctx context.Context, authorID uint) (int64, error)

	// CountByCategoryID 统计分类下的图书数量(删除守卫用)
	CountByCategoryID(ctx context.Context, categoryID uint) (int64, error)

	// Count 图书总数(仪表盘用)
	Count(ctx context.Context) (int64, error)

	// FindByIDs 批量查询图书(榜单组装用,返回顺序与ids一致)
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)
}
