package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrAlreadyReturned 记录已归还(终态),不允许再次归还或续借
	ErrAlreadyReturned = apperrors.New(apperrors.ErrCodeAlreadyReturned, "该借阅记录已归还")

	// ErrInvalidStateTransition 借阅状态不允许此操作
	ErrInvalidStateTransition = apperrors.New(apperrors.ErrCodeLoanStateError, "借阅状态不允许此操作")

	// ErrDueDateNotLater 续借的新应还时间未晚于当前应还时间
	ErrDueDateNotLater = apperrors.New(apperrors.ErrCodeDueDateNotLater, "新应还时间必须晚于当前应还时间")

	// ErrBookUnavailable 图书已被借出,暂不可借
	ErrBookUnavailable = apperrors.New(apperrors.ErrCodeBookBorrowed, "图书已被借出")

	// ErrUserNotActive 用户状态不允许借书
	ErrUserNotActive = apperrors.New(apperrors.ErrCodeUserNotActive, "用户状态不允许借书")
)
