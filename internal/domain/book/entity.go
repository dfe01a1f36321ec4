package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书的核心属性
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. 不直接引用Author/Category/Publisher实体,只保存ID列表
//    (跨聚合只通过ID关联,组装完整视图是应用层的职责)
// 4. PublisherID使用指针:图书可以没有出版社
type Book struct {
	ID              uint
	Title           string // 书名
	ISBN            string // ISBN号(国际标准书号)
	PublicationYear int    // 出版年份
	Description     string // 图书描述
	CoverImageURL   string // 封面图片URL
	FilePath        string // 电子书文件路径(可为空)
	PublisherID     *uint  // 出版社ID(nil=无出版社)
	AuthorIDs       []uint // 作者ID列表
	CategoryIDs     []uint // 分类ID列表
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 调用方需先完成ISBN格式校验与关联ID的存在性校验
func NewBook(title, isbn string, publicationYear int, description, coverImageURL, filePath string, publisherID *uint, authorIDs, categoryIDs []uint) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		ISBN:            isbn,
		PublicationYear: publicationYear,
		Description:     description,
		CoverImageURL:   coverImageURL,
		FilePath:        filePath,
		PublisherID:     publisherID,
		AuthorIDs:       authorIDs,
		CategoryIDs:     categoryIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateInfo 更新图书基本信息(领域行为)
// Patch语义:指针为nil表示不修改该字段
// 教学要点:用指针区分"未传"与"传了空值",这是Patch接口的常见做法
func (b *Book) UpdateInfo(title, isbn *string, publicationYear *int, description, coverImageURL, filePath *string) {
	if title != nil {
		b.Title = *title
	}
	if isbn != nil {
		b.ISBN = *isbn
	}
	if publicationYear != nil {
		b.PublicationYear = *publicationYear
	}
	if description != nil {
		b.Description = *description
	}
	if coverImageURL != nil {
		b.CoverImageURL = *coverImageURL
	}
	if filePath != nil {
		b.FilePath = *filePath
	}
	b.UpdatedAt = time.Now()
}

// ReplaceAuthors 替换作者列表(全量替换,不做增量合并)
func (b *Book) ReplaceAuthors(authorIDs []uint) {
	b.AuthorIDs = authorIDs
	b.UpdatedAt = time.Now()
}

// ReplaceCategories 替换分类列表(全量替换)
func (b *Book) ReplaceCategories(categoryIDs []uint) {
	b.CategoryIDs = categoryIDs
	b.UpdatedAt = time.Now()
}

// ChangePublisher 变更出版社(nil表示清除关联)
func (b *Book) ChangePublisher(publisherID *uint) {
	b.PublisherID = publisherID
	b.UpdatedAt = time.Now()
}
