package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/service"
	"shuttersense/backend/pkg/response"
)

// EventHandler 活动模块 HTTP 处理器
type EventHandler struct {
	eventSvc  service.EventService
	importSvc service.ImportService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService, importSvc service.ImportService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc, importSvc: importSvc}
}

// Create 创建活动
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
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

	event, err := h.eventSvc.Create(c.Request.Context(), teamID, userID, &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, event)
}

// Get 活动详情
// GET /api/v1/events/:guid
func (h *EventHandler) Get(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.Get(c.Request.Context(), teamID, c.Param("guid"))
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// List 活动分页列表
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	var req dto.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	events, pag, err := h.eventSvc.List(c.Request.Context(), teamID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, events, pag.Total, pag.Page, pag.PageSize)
}

// Update 更新活动（乐观锁）
// PUT /api/v1/events/:guid
func (h *EventHandler) Update(c *gin.Context) {
	var req dto.UpdateEventRequest
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

	event, err := h.eventSvc.Update(c.Request.Context(), teamID, c.Param("guid"), userID, &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// Delete 删除活动（软删）
// DELETE /api/v1/events/:guid
func (h *EventHandler) Delete(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), teamID, c.Param("guid"), userID); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

// ReplacePerformers 全量替换表演者
// PUT /api/v1/events/:guid/performers
func (h *EventHandler) ReplacePerformers(c *gin.Context) {
	var req dto.ReplacePerformersRequest
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

	event, err := h.eventSvc.ReplacePerformers(c.Request.Context(), teamID, c.Param("guid"), userID, req.Performers)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// ImportICS 导入 ICS 日历文件
// POST /api/v1/events/import
func (h *EventHandler) ImportICS(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "请上传 ICS 文件")
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

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "文件读取失败")
		return
	}
	defer file.Close()

	resp, err := h.importSvc.ImportICS(c.Request.Context(), teamID, userID, file)
	if err != nil {
		if errors.Is(err, service.ErrICSParseFailed) {
			response.BadRequest(c, 30007, "ICS 日历解析失败")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}

func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 30002, "活动不存在")
	case errors.Is(err, service.ErrInvalidEventDate):
		response.BadRequest(c, 31001, "活动日期格式无效")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 31002, "起止时间无效")
	case errors.Is(err, service.ErrSeriesNotFound):
		response.BadRequest(c, 31003, "活动系列不存在")
	case errors.Is(err, service.ErrVersionConflict):
		response.Conflict(c, 31004, "活动已被他人修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
