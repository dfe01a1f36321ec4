package review

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 书评领域错误定义
var (
	// ErrReviewNotFound 书评不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "书评不存在")

	// ErrReviewDuplicate 用户已评论过此书
	ErrReviewDuplicate = apperrors.New(apperrors.ErrCodeReviewDuplicate, "您已评论过此书")

	// ErrInvalidRating 评分超出范围
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1-5之间")

	// ErrNotOwner 非书评作者且非管理员
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "只有书评作者或管理员可以执行此操作")
)
