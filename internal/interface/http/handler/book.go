package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createUseCase *appbook.CreateBookUseCase
	getUseCase    *appbook.GetBookUseCase
	updateUseCase *appbook.UpdateBookUseCase
	deleteUseCase *appbook.DeleteBookUseCase
	listUseCase   *appbook.ListBooksUseCase
	searchUseCase *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createUseCase *appbook.CreateBookUseCase,
	getUseCase *appbook.GetBookUseCase,
	updateUseCase *appbook.UpdateBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	searchUseCase *appbook.SearchBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		listUseCase:   listUseCase,
		searchUseCase: searchUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  录入新图书，关联作者/分类/出版社
// @Tags         图书管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookDetail} "创建成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "关联的作者/分类/出版社不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/admin/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	detail, err := h.createUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
		CoverImageURL:   req.CoverImageURL,
		FilePath:        req.FilePath,
		PublisherID:     req.PublisherID,
		AuthorIDs:       req.AuthorIDs,
		CategoryIDs:     req.CategoryIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, detail)
}

// GetBook 查询图书详情
// @Summary      查询图书详情
// @Description  返回图书及其作者/分类/出版社和评分汇总
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  Patch语义：缺省字段不修改；author_ids/category_ids传空数组表示清空
// @Tags         图书管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "修改内容"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书或关联资源不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/admin/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 出版社Patch语义转换:
	// publisher_id有值 → 改为该出版社; clear_publisher=true → 置空; 都没有 → 不修改
	appReq := appbook.UpdateBookRequest{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
		CoverImageURL:   req.CoverImageURL,
		FilePath:        req.FilePath,
		AuthorIDs:       req.AuthorIDs,
		CategoryIDs:     req.CategoryIDs,
	}
	if req.ClearPublisher {
		appReq.SetPublisher = true
	} else if req.PublisherID != nil {
		appReq.SetPublisher = true
		appReq.PublisherID = req.PublisherID
	}

	detail, err := h.updateUseCase.Execute(c.Request.Context(), id, appReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  存在未归还借阅时拒绝删除；书评随图书一并删除
// @Tags         图书管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204 "删除成功"
// @Failure      400 {object} response.Response "存在未归还的借阅"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/admin/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询，支持关键字/分类/作者过滤和排序
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Param        keyword query string false "标题/ISBN关键字"
// @Param        category_id query int false "分类ID"
// @Param        author_id query int false "作者ID"
// @Param        sort_by query string false "排序字段" Enums(created_at, title, publication_year)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	books, total, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:       query.Page,
		PageSize:   query.PageSize,
		Keyword:    query.Keyword,
		CategoryID: query.CategoryID,
		AuthorID:   query.AuthorID,
		SortBy:     query.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, books, total, query.Page, query.PageSize)
}

// SearchBooks 图书搜索
// @Summary      图书搜索
// @Description  多条件组合搜索（标题/作者名/分类名/出版社名/年份区间/ISBN），文本条件为部分匹配
// @Tags         图书
// @Produce      json
// @Param        title query string false "标题关键字"
// @Param        author query string false "作者名关键字"
// @Param        category query string false "分类名关键字"
// @Param        publisher query string false "出版社名关键字"
// @Param        year_from query int false "出版年份下限"
// @Param        year_to query int false "出版年份上限"
// @Param        isbn query string false "ISBN精确匹配"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var query dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	books, total, err := h.searchUseCase.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Title:         query.Title,
		AuthorName:    query.AuthorName,
		CategoryName:  query.CategoryName,
		PublisherName: query.PublisherName,
		YearFrom:      query.YearFrom,
		YearTo:        query.YearTo,
		ISBN:          query.ISBN,
		Page:          query.Page,
		PageSize:      query.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, books, total, query.Page, query.PageSize)
}

// AdvancedSearch 高级搜索（管理端）
// @Summary      高级搜索
// @Description  按名称跨表匹配作者/分类/出版社，支持按"当前被某用户在借"过滤
// @Tags         图书管理
// @Produce      json
// @Security     BearerAuth
// @Param        title query string false "标题关键字"
// @Param        author query string false "作者名关键字"
// @Param        category query string false "分类名关键字"
// @Param        publisher query string false "出版社名关键字"
// @Param        borrowed_by query int false "当前借阅人ID"
// @Success      200 {object} response.Response{data=[]appbook.BookSummary}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/admin/books/search [get]
func (h *BookHandler) AdvancedSearch(c *gin.Context) {
	var query dto.AdvancedSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	books, err := h.searchUseCase.ExecuteAdvanced(c.Request.Context(), appbook.AdvancedSearchRequest{
		Title:            query.Title,
		AuthorName:       query.AuthorName,
		CategoryName:     query.CategoryName,
		PublisherName:    query.PublisherName,
		BorrowedByUserID: query.BorrowedByUserID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, books)
}
