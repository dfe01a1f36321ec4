package user

import (
	"time"
)

// Status 用户状态
// 设计说明：使用string类型而非int（数据库中直接存状态名，便于排查问题）
type Status string

const (
	StatusActive   Status = "ACTIVE"   // 正常，可借书
	StatusBanned   Status = "BANNED"   // 已封禁
	StatusInactive Status = "INACTIVE" // 未激活/已停用
)

// Role 用户角色
type Role string

const (
	RoleMember Role = "MEMBER" // 普通读者
	RoleAdmin  Role = "ADMIN"  // 管理员
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，包含用户的核心属性
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID           uint
	Email        string
	PasswordHash string // bcrypt哈希值
	FullName     string
	Status       Status
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
// 新用户默认：状态ACTIVE、角色MEMBER
func NewUser(email, hashedPassword, fullName string) *User {
	now := time.Now()
	return &User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     fullName,
		Status:       StatusActive,
		Role:         RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanBorrow 是否允许借书
// 业务规则：只有ACTIVE状态的用户可以借书
func (u *User) CanBorrow() bool {
	return u.Status == StatusActive
}

// UpdateProfile 更新个人资料（领域行为）
// 空字符串表示不修改
func (u *User) UpdateProfile(fullName string) {
	if fullName != "" {
		u.FullName = fullName
	}
	u.UpdatedAt = time.Now()
}

// ChangeStatus 变更用户状态（管理员操作）
func (u *User) ChangeStatus(status Status) {
	u.Status = status
	u.UpdatedAt = time.Now()
}

// ChangeRole 变更用户角色（管理员操作）
func (u *User) ChangeRole(role Role) {
	u.Role = role
	u.UpdatedAt = time.Now()
}

// IsValidStatus 校验状态值是否合法
func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusBanned, StatusInactive:
		return true
	}
	return false
}

// IsValidRole 校验角色值是否合法
func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleMember, RoleAdmin:
		return true
	}
	return false
}
