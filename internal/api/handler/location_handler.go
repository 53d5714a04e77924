package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/service"
	"shuttersense/backend/pkg/response"
)

// LocationHandler 地点模块 HTTP 处理器
type LocationHandler struct {
	locationSvc service.LocationService
}

// NewLocationHandler 创建 LocationHandler
func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

// Create 创建地点
// POST /api/v1/locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
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

	loc, err := h.locationSvc.Create(c.Request.Context(), teamID, userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, loc)
}

// Get 地点详情
// GET /api/v1/locations/:guid
func (h *LocationHandler) Get(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	loc, err := h.locationSvc.Get(c.Request.Context(), teamID, c.Param("guid"))
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			response.NotFound(c, 32001, "地点不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, loc)
}

// List 地点分页列表
// GET /api/v1/locations
func (h *LocationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	locations, pag, err := h.locationSvc.List(c.Request.Context(), teamID, page, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, locations, pag.Total, pag.Page, pag.PageSize)
}

// Update 更新地点
// PUT /api/v1/locations/:guid
func (h *LocationHandler) Update(c *gin.Context) {
	var req dto.UpdateLocationRequest
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

	loc, err := h.locationSvc.Update(c.Request.Context(), teamID, c.Param("guid"), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			response.NotFound(c, 32001, "地点不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, loc)
}

// Delete 删除地点（软删）
// DELETE /api/v1/locations/:guid
func (h *LocationHandler) Delete(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.locationSvc.Delete(c.Request.Context(), teamID, c.Param("guid"), userID); err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			response.NotFound(c, 32001, "地点不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
