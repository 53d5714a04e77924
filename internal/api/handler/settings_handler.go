package handler

import (
	"github.com/gin-gonic/gin"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/service"
	"shuttersense/backend/pkg/response"
)

// SettingsHandler 团队检测配置 HTTP 处理器
type SettingsHandler struct {
	configSvc service.TeamConfigService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(configSvc service.TeamConfigService) *SettingsHandler {
	return &SettingsHandler{configSvc: configSvc}
}

// GetSettings 获取团队检测配置（未设置项返回默认值）
// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	settings, err := h.configSvc.GetSettings(c.Request.Context(), teamID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}

// UpdateSettings 更新团队检测配置（部分更新，仅管理员）
// PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateTeamSettingsRequest
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

	settings, err := h.configSvc.UpdateSettings(c.Request.Context(), teamID, userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, settings)
}
