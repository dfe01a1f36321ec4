package review

import (
	"time"
)

// Review 书评实体(聚合根)
// DDD设计说明:
// 1. 一个用户对一本书只能有一条书评((user_id, book_id)唯一索引保证)
// 2. 评分1-5星,评论内容可为空(允许只打分)
// 3. 不直接关联User/Book对象,只保存ID(避免跨聚合引用)
type Review struct {
	ID        uint
	UserID    uint
	BookID    uint
	Rating    int    // 评分(1-5)
	Comment   string // 评论内容(可为空)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReview 创建书评(工厂方法)
// 调用方需先校验rating范围与图书/用户的存在性
func NewReview(userID, bookID uint, rating int, comment string) (*Review, error) {
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Review{
		UserID:    userID,
		BookID:    bookID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update 更新书评(Patch语义:nil表示不修改)
func (r *Review) Update(rating *int, comment *string) error {
	if rating != nil {
		if err := ValidateRating(*rating); err != nil {
			return err
		}
		r.Rating = *rating
	}
	if comment != nil {
		r.Comment = *comment
	}
	r.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查书评是否属于指定用户
// 教学要点:权限校验,书评只能由作者本人或管理员修改/删除
func (r *Review) IsOwnedBy(userID uint) bool {
	return r.UserID == userID
}

// ValidateRating 校验评分范围
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
