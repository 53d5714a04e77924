package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/service"
	"shuttersense/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 冲突报表导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportConflictReport 导出日期范围内的冲突报表（Excel）
// GET /api/v1/export/conflicts?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *ExportHandler) ExportConflictReport(c *gin.Context) {
	var req dto.DetectConflictsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teamID, ok := MustGetTeamID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportConflictReport(c.Request.Context(), teamID, req.StartDate, req.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 30001, "日期范围无效")
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c)
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
