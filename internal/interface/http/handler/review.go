package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/library/internal/application/review"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// ReviewHandler 书评HTTP处理器
type ReviewHandler struct {
	createUseCase *appreview.CreateReviewUseCase
	manageUseCase *appreview.ManageReviewUseCase
	listUseCase   *appreview.ListReviewsUseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(
	createUseCase *appreview.CreateReviewUseCase,
	manageUseCase *appreview.ManageReviewUseCase,
	listUseCase *appreview.ListReviewsUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		createUseCase: createUseCase,
		manageUseCase: manageUseCase,
		listUseCase:   listUseCase,
	}
}

// CreateReview 创建书评
// @Summary      创建书评
// @Description  对图书发表评分和评论，同一用户对同一本书只能评一次
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "书评内容"
// @Success      201 {object} response.Response{data=appreview.ReviewDetail} "创建成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "已评价过该图书"
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	detail, err := h.createUseCase.Execute(c.Request.Context(), appreview.CreateReviewRequest{
		UserID:  middleware.MustGetUserID(c),
		BookID:  req.BookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, detail)
}

// UpdateReview 更新书评
// @Summary      更新书评
// @Description  修改自己的评分或评论，管理员可修改任意书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Param        request body dto.UpdateReviewRequest true "修改内容"
// @Success      200 {object} response.Response{data=appreview.ReviewDetail}
// @Failure      403 {object} response.Response "只能修改自己的书评"
// @Failure      404 {object} response.Response "书评不存在"
// @Router       /api/v1/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	detail, err := h.manageUseCase.Update(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsAdmin(c), appreview.UpdateReviewRequest{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// DeleteReview 删除书评
// @Summary      删除书评
// @Description  删除自己的书评，管理员可删除任意书评
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Success      204 "删除成功"
// @Failure      403 {object} response.Response "只能删除自己的书评"
// @Failure      404 {object} response.Response "书评不存在"
// @Router       /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), id, middleware.MustGetUserID(c), middleware.IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// BookReviews 图书的书评列表
// @Summary      图书的书评列表
// @Description  分页返回某图书的书评，附带平均分和总数
// @Tags         书评
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response{data=appreview.BookReviewsResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/reviews [get]
func (h *ReviewHandler) BookReviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, total, err := h.listUseCase.ByBook(c.Request.Context(), id, query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"book_id":        result.BookID,
		"average_rating": result.AverageRating,
		"review_count":   result.ReviewCount,
		"reviews":        response.NewPageData(result.Reviews, total, query.Page, query.PageSize),
	})
}

// MyReviews 我的书评列表
// @Summary      我的书评列表
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/reviews/my [get]
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	reviews, total, err := h.listUseCase.ByUser(c.Request.Context(), middleware.MustGetUserID(c), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, reviews, total, query.Page, query.PageSize)
}
