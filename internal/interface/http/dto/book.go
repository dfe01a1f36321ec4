package dto

// CreateBookRequest 创建图书请求
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,min=1,max=200"`
	ISBN            string `json:"isbn" binding:"required"`
	PublicationYear int    `json:"publication_year" binding:"required"`
	Description     string `json:"description" binding:"max=5000"`
	CoverImageURL   string `json:"cover_image_url" binding:"omitempty,url"`
	FilePath        string `json:"file_path"`
	PublisherID     *uint  `json:"publisher_id"`
	AuthorIDs       []uint `json:"author_ids"`
	CategoryIDs     []uint `json:"category_ids"`
}

// UpdateBookRequest 更新图书请求
// Patch语义：
//   - 指针字段为null表示不修改
//   - author_ids/category_ids缺省表示不修改，空数组表示清空
//   - 置空出版社用clear_publisher=true（publisher_id为null无法区分"不改"和"清空"）
type UpdateBookRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1,max=200"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"publication_year"`
	Description     *string `json:"description" binding:"omitempty,max=5000"`
	CoverImageURL   *string `json:"cover_image_url" binding:"omitempty,url"`
	FilePath        *string `json:"file_path"`
	PublisherID     *uint   `json:"publisher_id"`
	ClearPublisher  bool    `json:"clear_publisher"`
	AuthorIDs       []uint  `json:"author_ids"`
	CategoryIDs     []uint  `json:"category_ids"`
}

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=10"`
	Keyword    string `form:"keyword"`
	CategoryID uint   `form:"category_id"`
	AuthorID   uint   `form:"author_id"`
	SortBy     string `form:"sort_by"`
}

// SearchBooksQuery 图书搜索查询参数
// 分类/出版社按名称模糊匹配，不要求调用方先查ID
type SearchBooksQuery struct {
	Title         string `form:"title"`
	AuthorName    string `form:"author"`
	CategoryName  string `form:"category"`
	PublisherName string `form:"publisher"`
	YearFrom      int    `form:"year_from"`
	YearTo        int    `form:"year_to"`
	ISBN          string `form:"isbn"`
	Page          int    `form:"page,default=1"`
	PageSize      int    `form:"page_size,default=10"`
}

// AdvancedSearchQuery 高级搜索查询参数（管理端）
// 支持按名称跨表匹配，以及按"当前被某用户在借"过滤
type AdvancedSearchQuery struct {
	Title            string `form:"title"`
	AuthorName       string `form:"author"`
	CategoryName     string `form:"category"`
	PublisherName    string `form:"publisher"`
	BorrowedByUserID uint   `form:"borrowed_by"`
}
