package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 一期仅实现冲突报告导出为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel 格式：Sheet「冲突组」按组罗列成员与冲突边；Sheet「活动评分」为全量评分表
type ExportService interface {
	// ExportConflictReport 导出指定日期范围的冲突报告
	ExportConflictReport(ctx context.Context, teamID, startDate, endDate string) (*bytes.Buffer, string, error)
}

type exportService struct {
	conflict ConflictService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(conflict ConflictService, logger *zap.Logger) ExportService {
	return &exportService{conflict: conflict, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportConflictReport — 冲突报告导出为 Excel
// ═══════════════════════════════════════════════════════════

var groupStatusLabels = map[string]string{
	GroupStatusUnresolved:        "未解决",
	GroupStatusPartiallyResolved: "部分解决",
	GroupStatusResolved:          "已解决",
}

var conflictTypeLabels = map[string]string{
	ConflictTypeTimeOverlap:  "时间重叠",
	ConflictTypeDistance:     "近日远距",
	ConflictTypeTravelBuffer: "差旅缓冲不足",
}

func (s *exportService) ExportConflictReport(ctx context.Context, teamID, startDate, endDate string) (*bytes.Buffer, string, error) {
	result, err := s.conflict.DetectConflicts(ctx, teamID, startDate, endDate)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Sheet 1: 冲突组 ──
	groupSheet := "冲突组"
	idx, err := f.NewSheet(groupSheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(groupSheet, "A", "A", 10)
	f.SetColWidth(groupSheet, "B", "B", 12)
	f.SetColWidth(groupSheet, "C", "D", 28)
	f.SetColWidth(groupSheet, "E", "E", 16)
	f.SetColWidth(groupSheet, "F", "F", 40)

	groupHeaders := []string{"组号", "状态", "活动 A", "活动 B", "冲突类型", "说明"}
	for i, h := range groupHeaders {
		cellRef, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(groupSheet, cellRef, h)
		f.SetCellStyle(groupSheet, cellRef, cellRef, headerStyle)
	}

	titleByGUID := make(map[string]string)
	for _, scored := range result.ScoredEvents {
		titleByGUID[scored.EventGUID] = scored.Title
	}

	row := 2
	for _, group := range result.Groups {
		for _, edge := range group.Edges {
			f.SetCellValue(groupSheet, cell("A", row), group.GroupID)
			f.SetCellValue(groupSheet, cell("B", row), groupStatusLabels[group.Status])
			f.SetCellValue(groupSheet, cell("C", row), titleByGUID[edge.EventAGUID])
			f.SetCellValue(groupSheet, cell("D", row), titleByGUID[edge.EventBGUID])
			f.SetCellValue(groupSheet, cell("E", row), conflictTypeLabels[edge.ConflictType])
			f.SetCellValue(groupSheet, cell("F", row), edge.Detail)
			row++
		}
	}

	// ── Sheet 2: 活动评分 ──
	scoreSheet := "活动评分"
	if _, err := f.NewSheet(scoreSheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	f.SetColWidth(scoreSheet, "A", "A", 28)
	f.SetColWidth(scoreSheet, "B", "C", 12)
	f.SetColWidth(scoreSheet, "D", "I", 12)

	scoreHeaders := []string{"活动", "日期", "出席", "场地", "主办方", "阵容", "后勤", "就绪度", "综合分"}
	for i, h := range scoreHeaders {
		cellRef, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(scoreSheet, cellRef, h)
		f.SetCellStyle(scoreSheet, cellRef, cellRef, headerStyle)
	}

	for i, scored := range result.ScoredEvents {
		r := i + 2
		f.SetCellValue(scoreSheet, cell("A", r), scored.Title)
		f.SetCellValue(scoreSheet, cell("B", r), scored.EventDate)
		f.SetCellValue(scoreSheet, cell("C", r), scored.Attendance)
		f.SetCellValue(scoreSheet, cell("D", r), scored.Scores.VenueQuality)
		f.SetCellValue(scoreSheet, cell("E", r), scored.Scores.OrganizerReputation)
		f.SetCellValue(scoreSheet, cell("F", r), scored.Scores.PerformerLineup)
		f.SetCellValue(scoreSheet, cell("G", r), scored.Scores.LogisticsEase)
		f.SetCellValue(scoreSheet, cell("H", r), scored.Scores.Readiness)
		f.SetCellValue(scoreSheet, cell("I", r), scored.Scores.Composite)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("conflict-report_%s_%s.xlsx",
		strings.ReplaceAll(startDate, "-", ""), strings.ReplaceAll(endDate, "-", ""))
	return buf, filename, nil
}

// cell 拼接单元格坐标，如 cell("A", 2) → "A2"
func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
