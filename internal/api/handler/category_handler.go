package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/service"
	"shuttersense/backend/pkg/response"
)

// CategoryHandler 分类与活动系列模块 HTTP 处理器
type CategoryHandler struct {
	categorySvc service.CategoryService
}

// NewCategoryHandler 创建 CategoryHandler
func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// ── 分类 ──

// CreateCategory 创建分类
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cat, err := h.categorySvc.CreateCategory(c.Request.Context(), teamID, userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, cat)
}

// ListCategories 分类列表
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	categories, err := h.categorySvc.ListCategories(c.Request.Context(), teamID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, categories)
}

// UpdateCategory 更新分类
// PUT /api/v1/categories/:guid
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cat, err := h.categorySvc.UpdateCategory(c.Request.Context(), teamID, c.Param("guid"), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.NotFound(c, 34001, "分类不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, cat)
}

// DeleteCategory 删除分类（软删）
// DELETE /api/v1/categories/:guid
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.categorySvc.DeleteCategory(c.Request.Context(), teamID, c.Param("guid"), userID); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.NotFound(c, 34001, "分类不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ── 活动系列 ──

// CreateSeries 创建活动系列
// POST /api/v1/series
func (h *CategoryHandler) CreateSeries(c *gin.Context) {
	var req dto.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	series, err := h.categorySvc.CreateSeries(c.Request.Context(), teamID, userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, series)
}

// ListSeries 活动系列列表
// GET /api/v1/series
func (h *CategoryHandler) ListSeries(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	series, err := h.categorySvc.ListSeries(c.Request.Context(), teamID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, series)
}

// UpdateSeries 更新活动系列
// PUT /api/v1/series/:guid
func (h *CategoryHandler) UpdateSeries(c *gin.Context) {
	var req dto.UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	series, err := h.categorySvc.UpdateSeries(c.Request.Context(), teamID, c.Param("guid"), userID, &req)
	if err != nil {
		h.handleSeriesError(c, err)
		return
	}

	response.OK(c, series)
}

// DeleteSeries 删除活动系列（软删）
// DELETE /api/v1/series/:guid
func (h *CategoryHandler) DeleteSeries(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.categorySvc.DeleteSeries(c.Request.Context(), teamID, c.Param("guid"), userID); err != nil {
		h.handleSeriesError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CategoryHandler) handleSeriesError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSeriesNotFound) {
		response.NotFound(c, 34002, "活动系列不存在")
		return
	}
	response.InternalError(c)
}
