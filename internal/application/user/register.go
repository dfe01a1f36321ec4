package user

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/user"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. 应用层负责编排领域服务，不包含业务规则（业务规则在domain层）
// 2. 使用Request/Response DTO隔离HTTP层与domain层
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
	}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
}

// RegisterResponse 注册响应DTO
// 注意：不返回密码等敏感信息
type RegisterResponse struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Execute 执行注册用例
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	// 调用领域服务完成注册（格式校验、密码加密、持久化）
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		UserID:    u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Status:    string(u.Status),
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}, nil
}
