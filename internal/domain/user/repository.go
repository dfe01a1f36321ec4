package user

import (
	"context"
)

// ListParams 用户列表查询参数
type ListParams struct {
	Status   string // 按状态过滤（空表示不过滤）
	Role     string // 按角色过滤（空表示不过滤）
	Keyword  string // 按邮箱/姓名模糊匹配
	Page     int
	PageSize int
}

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 这样domain层不依赖任何外部框架（GORM、sqlx等）
// 4. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建用户
	// 注意：如果邮箱已存在，应返回errors.ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 根据邮箱查找用户
	// 如果不存在，返回errors.ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error

	// Delete 删除用户（软删除）
	Delete(ctx context.Context, id uint) error

	// List 分页查询用户（管理端）
	List(ctx context.Context, params ListParams) ([]*User, int64, error)

	// Count 用户总数（仪表盘用）
	Count(ctx context.Context) (int64, error)
}
