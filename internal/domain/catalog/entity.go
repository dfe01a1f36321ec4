// Package catalog 目录聚合:作者、分类、出版社
//
// 设计说明:
// 三者都是结构简单的"引用数据"(reference data),没有独立的复杂行为,
// 合并在一个聚合包里,避免三个几乎一样的小包
package catalog

import (
	"time"
)

// Author 作者实体
type Author struct {
	ID        uint
	Name      string // 姓名
	Biography string // 简介
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者(工厂方法)
func NewAuthor(name, biography string) *Author {
	now := time.Now()
	return &Author{
		Name:      name,
		Biography: biography,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 更新作者信息(Patch语义:nil表示不修改)
func (a *Author) UpdateInfo(name, biography *string) {
	if name != nil {
		a.Name = *name
	}
	if biography != nil {
		a.Biography = *biography
	}
	a.UpdatedAt = time.Now()
}

// Category 分类实体
// 业务规则:分类名称全局唯一(数据库UNIQUE索引保证)
type Category struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory 创建分类(工厂方法)
func NewCategory(name string) *Category {
	now := time.Now()
	return &Category{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename 重命名分类
func (c *Category) Rename(name string) {
	c.Name = name
	c.UpdatedAt = time.Now()
}

// Publisher 出版社实体
// 业务规则:出版社名称全局唯一(数据库UNIQUE索引保证)
type Publisher struct {
	ID        uint
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPublisher 创建出版社(工厂方法)
func NewPublisher(name, address string) *Publisher {
	now := time.Now()
	return &Publisher{
		Name:      name,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 更新出版社信息(Patch语义:nil表示不修改)
func (p *Publisher) UpdateInfo(name, address *string) {
	if name != nil {
		p.Name = *name
	}
	if address != nil {
		p.Address = *address
	}
	p.UpdatedAt = time.Now()
}
