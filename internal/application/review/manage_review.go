package review

import (
	"context"

	"github.com/xiebiao/library/internal/domain/review"
)

// ManageReviewUseCase 书评修改/删除用例
// 权限规则:只有书评作者本人或管理员可以修改/删除
// 教学要点:调用者身份(callerID/callerIsAdmin)由HTTP层从JWT提取后显式传入,
// 应用层不碰gin.Context,保持可测试性
type ManageReviewUseCase struct {
	reviewRepo review.Repository
}

// NewManageReviewUseCase 创建书评管理用例
func NewManageReviewUseCase(reviewRepo review.Repository) *ManageReviewUseCase {
	return &ManageReviewUseCase{reviewRepo: reviewRepo}
}

// UpdateReviewRequest 更新书评请求DTO(Patch语义:nil表示不修改)
type UpdateReviewRequest struct {
	Rating  *int
	Comment *string
}

// Update 更新书评
func (uc *ManageReviewUseCase) Update(ctx context.Context, reviewID, callerID uint, callerIsAdmin bool, req UpdateReviewRequest) (*ReviewDetail, error) {
	// 1. 查找书评
	rev, err := uc.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	// 2. 权限校验:作者本人或管理员
	if !rev.IsOwnedBy(callerID) && !callerIsAdmin {
		return nil, review.ErrNotOwner
	}

	// 3. 应用变更(评分范围校验在领域行为内)
	if err := rev.Update(req.Rating, req.Comment); err != nil {
		return nil, err
	}

	// 4. 落库
	if err := uc.reviewRepo.Update(ctx, rev); err != nil {
		return nil, err
	}

	return toReviewDetail(rev), nil
}

// Delete 删除书评
func (uc *ManageReviewUseCase) Delete(ctx context.Context, reviewID, callerID uint, callerIsAdmin bool) error {
	rev, err := uc.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if !rev.IsOwnedBy(callerID) && !callerIsAdmin {
		return review.ErrNotOwner
	}

	return uc.reviewRepo.Delete(ctx, reviewID)
}
