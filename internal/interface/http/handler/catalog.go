package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// CatalogHandler 目录维护HTTP处理器（作者/分类/出版社）
// 三个资源的CRUD形态一致，集中在一个Handler里
type CatalogHandler struct {
	authorUseCase    *appcatalog.AuthorUseCase
	categoryUseCase  *appcatalog.CategoryUseCase
	publisherUseCase *appcatalog.PublisherUseCase
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(
	authorUseCase *appcatalog.AuthorUseCase,
	categoryUseCase *appcatalog.CategoryUseCase,
	publisherUseCase *appcatalog.PublisherUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		authorUseCase:    authorUseCase,
		categoryUseCase:  categoryUseCase,
		publisherUseCase: publisherUseCase,
	}
}

// =========================================
// 作者
// =========================================

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         目录管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=appcatalog.AuthorDetail}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/admin/authors [post]
func (h *CatalogHandler) CreateAuthor(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	detail, err := h.authorUseCase.Create(c.Request.Context(), appcatalog.CreateAuthorRequest{
		Name:      req.Name,
		Biography: req.Biography,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, detail)
}

// GetAuthor 查询作者详情
// @Summary      查询作者详情
// @Tags         目录
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=appcatalog.AuthorDetail}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *CatalogHandler) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.authorUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Tags         目录
// @Produce      json
// @Param        keyword query string false "姓名关键字"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/authors [get]
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	var query dto.CatalogListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	authors, total, err := h.authorUseCase.List(c.Request.Context(), query.Keyword, query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, authors, total, query.Page, query.PageSize)
}

// UpdateAuthor 更新作者
// @Summary      更新作者
// @Tags         目录管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Param        request body dto.UpdateAuthorRequest true "修改内容"
// @Success      200 {object} response.Response{data=appcatalog.AuthorDetail}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/admin/authors/{id} [put]
func (h *CatalogHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	detail, err := h.authorUseCase.Update(c.Request.Context(), id, appcatalog.UpdateAuthorRequest{
		Name:      req.Name,
		Biography: req.Biography,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Description  作者名下还有图书时拒绝删除
// @Tags         目录管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      204 "删除成功"
// @Failure      400 {object} response.Response "作者名下还有图书"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/admin/authors/{id} [delete]
func (h *CatalogHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.authorUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// =========================================
// 分类
// =========================================

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         目录管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=appcatalog.CategoryDetail}
// @Failure      409 {object} response.Response "分类名已存在"
// @Router       /api/v1/admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	detail, err := h.categoryUseCase.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, detail)
}

// GetCategory 查询分类详情
// @Summary      查询分类详情
// @Tags         目录
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appcatalog.CategoryDetail}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.categoryUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// ListCategories 分类列表
// @Summary      分类列表
// @Description  分类数量有限，不分页，按名称排序返回全部
// @Tags         目录
// @Produce      json
// @Success      200 {object} response.Response{data=[]appcatalog.CategoryDetail}
// @Router       /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, categories)
}

// UpdateCategory 更新分类
// @Summary      更新分类
// @Tags         目录管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "修改内容"
// @Success      200 {object} response.Response{data=appcatalog.CategoryDetail}
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "分类名已存在"
// @Router       /api/v1/admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	detail, err := h.categoryUseCase.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Description  分类下还有图书时拒绝删除
// @Tags         目录管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      204 "删除成功"
// @Failure      400 {object} response.Response "分类下还有图书"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// =========================================
// 出版社
// =========================================

// CreatePublisher 创建出版社
// @Summary      创建出版社
// @Tags         目录管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePublisherRequest true "出版社信息"
// @Success      201 {object} response.Response{data=appcatalog.PublisherDetail}
// @Failure      409 {object} response.Response "出版社名已存在"
// @Router       /api/v1/admin/publishers [post]
func (h *CatalogHandler) CreatePublisher(c *gin.Context) {
	var req dto.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	detail, err := h.publisherUseCase.Create(c.Request.Context(), appcatalog.CreatePublisherRequest{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, detail)
}

// GetPublisher 查询出版社详情
// @Summary      查询出版社详情
// @Tags         目录
// @Produce      json
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response{data=appcatalog.PublisherDetail}
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/publishers/{id} [get]
func (h *CatalogHandler) GetPublisher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.publisherUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// ListPublishers 出版社列表
// @Summary      出版社列表
// @Tags         目录
// @Produce      json
// @Param        keyword query string false "名称关键字"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/publishers [get]
func (h *CatalogHandler) ListPublishers(c *gin.Context) {
	var query dto.CatalogListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	publishers, total, err := h.publisherUseCase.List(c.Request.Context(), query.Keyword, query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, publishers, total, query.Page, query.PageSize)
}

// UpdatePublisher 更新出版社
// @Summary      更新出版社
// @Tags         目录管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Param        request body dto.UpdatePublisherRequest true "修改内容"
// @Success      200 {object} response.Response{data=appcatalog.PublisherDetail}
// @Failure      404 {object} response.Response "出版社不存在"
// @Failure      409 {object} response.Response "出版社名已存在"
// @Router       /api/v1/admin/publishers/{id} [put]
func (h *CatalogHandler) UpdatePublisher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	detail, err := h.publisherUseCase.Update(c.Request.Context(), id, appcatalog.UpdatePublisherRequest{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// DeletePublisher 删除出版社
// @Summary      删除出版社
// @Description  出版社名下还有图书时拒绝删除
// @Tags         目录管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      204 "删除成功"
// @Failure      400 {object} response.Response "出版社名下还有图书"
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/admin/publishers/{id} [delete]
func (h *CatalogHandler) DeletePublisher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.publisherUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
