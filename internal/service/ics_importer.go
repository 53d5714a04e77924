package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/model"
	"shuttersense/backend/internal/repository"
	"shuttersense/backend/pkg/guid"
)

// ── ICS 导入 ────────────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容导入为团队活动。
//
// 设计决策：
//   - DTSTART 确定活动日期与开始时间；DTEND 缺失时开始时间照录、结束时间留空
//   - DTSTART 为纯日期（VALUE=DATE）→ 全天活动
//   - SUMMARY 缺失的 VEVENT 跳过并记入 warnings
//   - 不解析 RRULE 展开：重复事件按日历中实际出现的 VEVENT 逐条导入
//   - 地点/主办方/分类不做自动匹配，导入后由用户补录
// ─────────────────────────────────────────────────────────────

var ErrICSParseFailed = errors.New("ICS 日历解析失败")

const icsMaxFileSize = 5 * 1024 * 1024 // 5MB

// ImportService ICS 日历导入业务接口
type ImportService interface {
	ImportICS(ctx context.Context, teamID, callerID string, reader io.Reader) (*dto.ImportICSResponse, error)
}

type importService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{repo: repo, logger: logger}
}

func (s *importService) ImportICS(ctx context.Context, teamID, callerID string, reader io.Reader) (*dto.ImportICSResponse, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, ErrICSParseFailed
	}

	var (
		events   []model.Event
		warnings []string
		skipped  int
	)
	for _, comp := range cal.Events() {
		event, warning := s.parseVEvent(comp, teamID, callerID)
		if event == nil {
			skipped++
			if warning != "" {
				warnings = append(warnings, warning)
			}
			continue
		}
		events = append(events, *event)
	}

	if err := s.repo.Event.BatchCreate(ctx, events); err != nil {
		s.logger.Error("导入活动写入失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}

	s.logger.Info("ICS 导入完成",
		zap.String("team_id", teamID),
		zap.Int("imported", len(events)),
		zap.Int("skipped", skipped))

	return &dto.ImportICSResponse{
		ImportedCount: len(events),
		SkippedCount:  skipped,
		Warnings:      warnings,
	}, nil
}

// parseVEvent 解析单个 VEVENT；返回 nil 表示跳过，warning 说明原因
func (s *importService) parseVEvent(evt *ics.VEvent, teamID, callerID string) (*model.Event, string) {
	summary := evt.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return nil, "跳过无标题的日历条目"
	}
	title := strings.TrimSpace(summary.Value)

	start, startIsDate, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart)
	if err != nil {
		return nil, fmt.Sprintf("跳过「%s」：无法解析开始时间", title)
	}

	event := &model.Event{
		EventGUID:  guid.New(guid.PrefixEvent),
		TeamID:     teamID,
		Title:      title,
		EventDate:  time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		IsAllDay:   startIsDate,
		Status:     "future",
		Attendance: model.AttendancePlanned,
	}
	event.CreatedBy = &callerID
	event.UpdatedBy = &callerID

	if !startIsDate {
		startTime := start.Format("15:04")
		event.StartTime = &startTime

		if end, endIsDate, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd); err == nil && !endIsDate {
			endTime := end.Format("15:04")
			event.EndTime = &endTime
		}
	}
	return event, ""
}

// parseICSDateTime 解析 VEVENT 日期时间属性
// 第二个返回值表示原始值为纯日期（VALUE=DATE，即全天事件）
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty) (time.Time, bool, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, false, fmt.Errorf("缺少属性 %s", propName)
	}
	val := prop.Value

	// TZID 参数
	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}

	formats := []struct {
		layout string
		isDate bool
	}{
		{"20060102T150405Z", false},
		{"20060102T150405", false},
		{"20060102", true},
	}
	for _, f := range formats {
		t, err := time.Parse(f.layout, val)
		if err != nil {
			continue
		}
		if strings.HasSuffix(f.layout, "Z") {
			return t, false, nil
		}
		if tzid != "" {
			if tzLoc, err := time.LoadLocation(tzid); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, tzLoc), f.isDate, nil
			}
		}
		return t, f.isDate, nil
	}

	return time.Time{}, false, fmt.Errorf("无法解析日期: %s", val)
}
