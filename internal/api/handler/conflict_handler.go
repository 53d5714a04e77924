package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/service"
	"shuttersense/backend/pkg/response"
)

// ConflictHandler 冲突检测模块 HTTP 处理器
type ConflictHandler struct {
	conflictSvc service.ConflictService
}

// NewConflictHandler 创建 ConflictHandler
func NewConflictHandler(conflictSvc service.ConflictService) *ConflictHandler {
	return &ConflictHandler{conflictSvc: conflictSvc}
}

// DetectConflicts 检测日期范围内的冲突
// GET /api/v1/conflicts?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *ConflictHandler) DetectConflicts(c *gin.Context) {
	var req dto.DetectConflictsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	resp, err := h.conflictSvc.DetectConflicts(c.Request.Context(), teamID, req.StartDate, req.EndDate)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.BadRequest(c, 30001, "日期范围无效")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, resp)
}

// GetEventScores 获取单活动五维评分
// GET /api/v1/events/:guid/scores
func (h *ConflictHandler) GetEventScores(c *gin.Context) {
	eventGUID := c.Param("guid")
	if eventGUID == "" {
		response.BadRequest(c, 10001, "活动GUID不能为空")
		return
	}

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	scores, err := h.conflictSvc.GetEventScores(c.Request.Context(), teamID, eventGUID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(c, 30002, "活动不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, scores)
}

// ResolveConflicts 批量应用出席决策
// POST /api/v1/conflicts/resolve
func (h *ConflictHandler) ResolveConflicts(c *gin.Context) {
	var req dto.ResolveConflictsRequest
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

	resp, err := h.conflictSvc.ResolveConflicts(c.Request.Context(), teamID, userID, &req)
	if err != nil {
		h.handleResolveError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *ConflictHandler) handleResolveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoDecisions):
		response.BadRequest(c, 30003, "决策列表不能为空")
	case errors.Is(err, service.ErrDecisionIncomplete):
		response.BadRequest(c, 30004, "决策缺少必填字段")
	case errors.Is(err, service.ErrInvalidAttendance):
		response.BadRequest(c, 30005, "出席状态无效")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 30002, "活动不存在")
	case errors.Is(err, service.ErrAttendanceLocked):
		response.Conflict(c, 30006, "该活动状态强制跳过，不可改为其他出席状态")
	default:
		response.InternalError(c)
	}
}
