package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一约束冲突
// 仓储层据此把底层错误转换为领域错误,
// 如邮箱重复→ErrEmailDuplicate、ISBN重复→ErrISBNDuplicate、
// (user_id, book_id)书评唯一索引→ErrReviewDuplicate
//
// 判断分两层:
// 1. gorm.ErrDuplicatedKey(需要driver开启TranslateError)
// 2. 兜底匹配MySQL 1062错误的"Duplicate entry"文案,
//    未开启错误翻译时1062原样透出
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
