package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/service"
	"shuttersense/backend/pkg/response"
)

// OrganizerHandler 主办方模块 HTTP 处理器
type OrganizerHandler struct {
	organizerSvc service.OrganizerService
}

// NewOrganizerHandler 创建 OrganizerHandler
func NewOrganizerHandler(organizerSvc service.OrganizerService) *OrganizerHandler {
	return &OrganizerHandler{organizerSvc: organizerSvc}
}

// Create 创建主办方
// POST /api/v1/organizers
func (h *OrganizerHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizerRequest
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

	org, err := h.organizerSvc.Create(c.Request.Context(), teamID, userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, org)
}

// Get 主办方详情
// GET /api/v1/organizers/:guid
func (h *OrganizerHandler) Get(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	org, err := h.organizerSvc.Get(c.Request.Context(), teamID, c.Param("guid"))
	if err != nil {
		if errors.Is(err, service.ErrOrganizerNotFound) {
			response.NotFound(c, 33001, "主办方不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, org)
}

// List 主办方分页列表
// GET /api/v1/organizers
func (h *OrganizerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	organizers, pag, err := h.organizerSvc.List(c.Request.Context(), teamID, page, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, organizers, pag.Total, pag.Page, pag.PageSize)
}

// Update 更新主办方
// PUT /api/v1/organizers/:guid
func (h *OrganizerHandler) Update(c *gin.Context) {
	var req dto.UpdateOrganizerRequest
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

	org, err := h.organizerSvc.Update(c.Request.Context(), teamID, c.Param("guid"), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrOrganizerNotFound) {
			response.NotFound(c, 33001, "主办方不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, org)
}

// Delete 删除主办方（软删）
// DELETE /api/v1/organizers/:guid
func (h *OrganizerHandler) Delete(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.organizerSvc.Delete(c.Request.Context(), teamID, c.Param("guid"), userID); err != nil {
		if errors.Is(err, service.ErrOrganizerNotFound) {
			response.NotFound(c, 33001, "主办方不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
