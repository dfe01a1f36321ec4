package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")

	// ErrInvalidYear 出版年份不合法
	ErrInvalidYear = apperrors.New(apperrors.ErrCodeInvalidParams, "出版年份不合法")

	// ErrHasActiveLoans 存在未归还的借阅,不允许删除
	ErrHasActiveLoans = apperrors.New(apperrors.ErrCodeHasDependents, "图书存在未归还的借阅,不允许删除")
)
