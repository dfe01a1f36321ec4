package user

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ManageUsersUseCase 用户管理用例
// 设计说明：
// 1. 查询/资料修改：本人或管理员
// 2. 状态/角色变更：仅管理员（权限由HTTP中间件保证，这里做二次校验）
// 3. 封禁用户时顺带删除其Redis会话（强制下线）
type ManageUsersUseCase struct {
	userRepo     user.Repository
	userService  user.Service
	sessionStore *redis.SessionStore
}

// NewManageUsersUseCase 创建用户管理用例
func NewManageUsersUseCase(
	userRepo user.Repository,
	userService user.Service,
	sessionStore *redis.SessionStore,
) *ManageUsersUseCase {
	return &ManageUsersUseCase{
		userRepo:     userRepo,
		userService:  userService,
		sessionStore: sessionStore,
	}
}

// UserDetail 用户详情DTO
type UserDetail struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get 查询用户详情
// 权限规则：本人或管理员
func (uc *ManageUsersUseCase) Get(ctx context.Context, id, callerID uint, callerIsAdmin bool) (*UserDetail, error) {
	if id != callerID && !callerIsAdmin {
		return nil, apperrors.ErrForbidden
	}

	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserDetail(u), nil
}

// ListUsersRequest 用户列表请求（管理端）
type ListUsersRequest struct {
	Status   string
	Role     string
	Keyword  string
	Page     int
	PageSize int
}

// List 分页查询用户列表（管理端）
func (uc *ManageUsersUseCase) List(ctx context.Context, req ListUsersRequest) ([]*UserDetail, int64, error) {
	normalizePage(&req.Page, &req.PageSize)

	if req.Status != "" && !user.IsValidStatus(req.Status) {
		return nil, 0, apperrors.New(apperrors.ErrCodeInvalidParams, "无效的用户状态")
	}
	if req.Role != "" && !user.IsValidRole(req.Role) {
		return nil, 0, apperrors.New(apperrors.ErrCodeInvalidParams, "无效的用户角色")
	}

	users, total, err := uc.userRepo.List(ctx, user.ListParams{
		Status:   req.Status,
		Role:     req.Role,
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	details := make([]*UserDetail, len(users))
	for i, u := range users {
		details[i] = toUserDetail(u)
	}

	return details, total, nil
}

// UpdateProfileRequest 资料修改请求（Patch语义：nil表示不修改）
type UpdateProfileRequest struct {
	FullName *string
}

// UpdateProfile 修改个人资料
// 权限规则：本人或管理员
func (uc *ManageUsersUseCase) UpdateProfile(ctx context.Context, id, callerID uint, callerIsAdmin bool, req UpdateProfileRequest) (*UserDetail, error) {
	if id != callerID && !callerIsAdmin {
		return nil, apperrors.ErrForbidden
	}

	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if len(*req.FullName) < 2 || len(*req.FullName) > 100 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "姓名长度应为2-100个字符")
		}
		u.UpdateProfile(*req.FullName)
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return toUserDetail(u), nil
}

// ChangePassword 修改密码（需验证旧密码，仅限本人）
func (uc *ManageUsersUseCase) ChangePassword(ctx context.Context, callerID uint, oldPassword, newPassword string) error {
	return uc.userService.ChangePassword(ctx, callerID, oldPassword, newPassword)
}

// UpdateStatus 变更用户状态（仅管理员）
// 封禁时删除Redis会话，强制下线
func (uc *ManageUsersUseCase) UpdateStatus(ctx context.Context, id uint, status string) (*UserDetail, error) {
	if !user.IsValidStatus(status) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "无效的用户状态")
	}

	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.ChangeStatus(user.Status(status))
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	// 封禁/停用后强制下线
	if u.Status != user.StatusActive {
		if err := uc.sessionStore.DeleteSession(ctx, u.ID); err != nil {
			// 会话删除失败不影响状态变更结果
			log.Printf("删除用户会话失败 user_id=%d: %v", u.ID, err)
		}
	}

	return toUserDetail(u), nil
}

// UpdateRole 变更用户角色（仅管理员）
func (uc *ManageUsersUseCase) UpdateRole(ctx context.Context, id uint, role string) (*UserDetail, error) {
	if !user.IsValidRole(role) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "无效的用户角色")
	}

	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.ChangeRole(user.Role(role))
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return toUserDetail(u), nil
}

// =========================================
// 辅助函数
// =========================================

func toUserDetail(u *user.User) *UserDetail {
	return &UserDetail{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Status:    string(u.Status),
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
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
