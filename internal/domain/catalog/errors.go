package catalog

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 目录领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrPublisherNotFound 出版社不存在
	ErrPublisherNotFound = apperrors.New(apperrors.ErrCodePublisherNotFound, "出版社不存在")

	// ErrCategoryDuplicate 分类名称已存在
	ErrCategoryDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名称已存在")

	// ErrPublisherDuplicate 出版社名称已存在
	ErrPublisherDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "出版社名称已存在")

	// ErrAuthorHasBooks 作者名下存在图书,不允许删除
	ErrAuthorHasBooks = apperrors.New(apperrors.ErrCodeHasDependents, "作者名下存在图书,不允许删除")

	// ErrCategoryHasBooks 分类下存在图书,不允许删除
	ErrCategoryHasBooks = apperrors.New(apperrors.ErrCodeHasDependents, "分类下存在图书,不允许删除")

	// ErrPublisherHasBooks 出版社名下存在图书,不允许删除
	ErrPublisherHasBooks = apperrors.New(apperrors.ErrCodeHasDependents, "出版社名下存在图书,不允许删除")
)
