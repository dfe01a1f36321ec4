package dto

// CreateAuthorRequest 创建作者请求
type CreateAuthorRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Biography string `json:"biography" binding:"max=5000"`
}

// UpdateAuthorRequest 更新作者请求（Patch语义：null表示不修改）
type UpdateAuthorRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	Biography *string `json:"biography" binding:"omitempty,max=5000"`
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreatePublisherRequest 创建出版社请求
type CreatePublisherRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// UpdatePublisherRequest 更新出版社请求（Patch语义：null表示不修改）
type UpdatePublisherRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// CatalogListQuery 作者/出版社列表查询参数
type CatalogListQuery struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=10"`
}
