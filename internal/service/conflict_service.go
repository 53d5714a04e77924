package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/model"
	"shuttersense/backend/internal/repository"
	"shuttersense/backend/pkg/guid"
)

// ── 冲突模块业务错误 ──

var (
	ErrEventNotFound      = errors.New("活动不存在")
	ErrInvalidDateRange   = errors.New("日期范围无效")
	ErrNoDecisions        = errors.New("决策列表不能为空")
	ErrDecisionIncomplete = errors.New("决策缺少必填字段")
	ErrInvalidAttendance  = errors.New("出席状态无效")
	ErrAttendanceLocked   = errors.New("该活动状态强制跳过，不可改为其他出席状态")
)

// ConflictService 冲突检测与出席决策业务接口
type ConflictService interface {
	// 检测指定日期范围内的冲突（冲突组为瞬态，每次调用重算）
	DetectConflicts(ctx context.Context, teamID, startDate, endDate string) (*dto.DetectConflictsResponse, error)
	// 获取单活动五维评分
	GetEventScores(ctx context.Context, teamID, eventGUID string) (*dto.EventScores, error)
	// 批量应用出席决策（全量校验通过后单事务提交）
	ResolveConflicts(ctx context.Context, teamID, callerID string, req *dto.ResolveConflictsRequest) (*dto.ResolveConflictsResponse, error)
}

type conflictService struct {
	repo       *repository.Repository
	teamConfig TeamConfigService
	logger     *zap.Logger
}

// NewConflictService 创建 ConflictService 实例
func NewConflictService(repo *repository.Repository, teamConfig TeamConfigService, logger *zap.Logger) ConflictService {
	return &conflictService{repo: repo, teamConfig: teamConfig, logger: logger}
}

// ════════════════════════════════════════════════════════════
// DetectConflicts — 检测 → 分组 → 评分 → 状态推导
// ════════════════════════════════════════════════════════════

func (s *conflictService) DetectConflicts(ctx context.Context, teamID, startDate, endDate string) (*dto.DetectConflictsResponse, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	// 1. 装载团队配置（已定型，默认值在装载边界套用）
	rules, err := s.teamConfig.GetConflictRules(ctx, teamID)
	if err != nil {
		return nil, err
	}
	weights, err := s.teamConfig.GetScoringWeights(ctx, teamID)
	if err != nil {
		return nil, err
	}
	forcesSkip, err := s.teamConfig.GetForcesSkipStatuses(ctx, teamID)
	if err != nil {
		return nil, err
	}
	forcesSkipSet := make(map[string]struct{}, len(forcesSkip))
	for _, status := range forcesSkip {
		forcesSkipSet[status] = struct{}{}
	}

	// 2. 拉取区间内活动快照（未删除、非截止日，含全部关联）
	events, err := s.repo.Event.ListInRange(ctx, teamID, start, end)
	if err != nil {
		s.logger.Error("查询区间活动失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}

	// 3. 三轮检测 + 并查集分组
	edges := detectConflicts(events, rules)
	groups := groupEdges(edges)

	// 4. 全量评分（是否入组都评）
	scoredByGUID := make(map[string]dto.ScoredEvent, len(events))
	scoredEvents := make([]dto.ScoredEvent, 0, len(events))
	attendance := make(map[string]string, len(events))
	for i := range events {
		e := &events[i]
		scores := scoreEvent(e, weights, rules.PerformerCeiling)
		scored := toScoredEvent(e, scores, forcesSkipSet)
		scoredByGUID[e.EventGUID] = scored
		scoredEvents = append(scoredEvents, scored)
		attendance[e.EventGUID] = e.Attendance
	}

	// 5. 组状态推导与响应装配
	resp := &dto.DetectConflictsResponse{
		Groups:       make([]dto.ConflictGroupDTO, 0, len(groups)),
		ScoredEvents: scoredEvents,
	}
	for _, g := range groups {
		status := deriveGroupStatus(g.Edges, attendance)

		groupDTO := dto.ConflictGroupDTO{
			GroupID: g.GroupID,
			Status:  status,
			Events:  make([]dto.ScoredEvent, 0, len(g.MemberGUIDs)),
			Edges:   make([]dto.ConflictEdgeDTO, 0, len(g.Edges)),
		}
		for _, memberGUID := range g.MemberGUIDs {
			groupDTO.Events = append(groupDTO.Events, scoredByGUID[memberGUID])
		}
		for _, e := range g.Edges {
			groupDTO.Edges = append(groupDTO.Edges, dto.ConflictEdgeDTO{
				EventAGUID:   e.EventAGUID,
				EventBGUID:   e.EventBGUID,
				ConflictType: e.ConflictType,
				Detail:       e.Detail,
			})
		}
		resp.Groups = append(resp.Groups, groupDTO)

		resp.Summary.TotalGroups++
		switch status {
		case GroupStatusUnresolved:
			resp.Summary.Unresolved++
		case GroupStatusPartiallyResolved:
			resp.Summary.PartiallyResolved++
		case GroupStatusResolved:
			resp.Summary.Resolved++
		}
	}

	s.logger.Info("冲突检测完成",
		zap.String("team_id", teamID),
		zap.Int("events", len(events)),
		zap.Int("edges", len(edges)),
		zap.Int("groups", len(groups)))

	return resp, nil
}

// GetEventScores 获取单活动评分；前缀非法、跨团队、已删除均按不存在处理
func (s *conflictService) GetEventScores(ctx context.Context, teamID, eventGUID string) (*dto.EventScores, error) {
	if !guid.Valid(eventGUID, guid.PrefixEvent) {
		return nil, ErrEventNotFound
	}

	event, err := s.repo.Event.GetByGUID(ctx, teamID, eventGUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.Error(err), zap.String("event_guid", eventGUID))
		return nil, err
	}

	rules, err := s.teamConfig.GetConflictRules(ctx, teamID)
	if err != nil {
		return nil, err
	}
	weights, err := s.teamConfig.GetScoringWeights(ctx, teamID)
	if err != nil {
		return nil, err
	}

	scores := scoreEvent(event, weights, rules.PerformerCeiling)
	return &scores, nil
}

// ════════════════════════════════════════════════════════════
// ResolveConflicts — 先全量校验，再单事务提交
// ════════════════════════════════════════════════════════════

func (s *conflictService) ResolveConflicts(ctx context.Context, teamID, callerID string, req *dto.ResolveConflictsRequest) (*dto.ResolveConflictsResponse, error) {
	if len(req.Decisions) == 0 {
		return nil, ErrNoDecisions
	}

	forcesSkip, err := s.teamConfig.GetForcesSkipStatuses(ctx, teamID)
	if err != nil {
		return nil, err
	}
	forcesSkipSet := make(map[string]struct{}, len(forcesSkip))
	for _, status := range forcesSkip {
		forcesSkipSet[status] = struct{}{}
	}

	// 按序校验；首个非法决策即中止，后续不再处理，也不产生任何变更
	changes := make([]repository.AttendanceChange, 0, len(req.Decisions))
	for _, decision := range req.Decisions {
		if decision.EventGUID == "" || decision.Attendance == "" {
			return nil, ErrDecisionIncomplete
		}
		if !model.ValidAttendance(decision.Attendance) {
			return nil, ErrInvalidAttendance
		}
		if !guid.Valid(decision.EventGUID, guid.PrefixEvent) {
			return nil, ErrEventNotFound
		}

		event, err := s.repo.Event.GetByGUID(ctx, teamID, decision.EventGUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEventNotFound
			}
			s.logger.Error("查询活动失败", zap.Error(err), zap.String("event_guid", decision.EventGUID))
			return nil, err
		}

		if _, locked := forcesSkipSet[event.Status]; locked && decision.Attendance != model.AttendanceSkipped {
			return nil, ErrAttendanceLocked
		}

		// 仅实际发生变化的决策计入提交与统计
		if event.Attendance != decision.Attendance {
			changes = append(changes, repository.AttendanceChange{
				EventGUID:  decision.EventGUID,
				Attendance: decision.Attendance,
				UpdatedBy:  callerID,
			})
		}
	}

	if err := s.repo.Event.BatchUpdateAttendance(ctx, changes); err != nil {
		s.logger.Error("批量更新出席状态失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}

	s.logger.Info("出席决策已应用",
		zap.String("team_id", teamID),
		zap.String("caller_id", callerID),
		zap.String("group_id", req.GroupID),
		zap.Int("decisions", len(req.Decisions)),
		zap.Int("updated", len(changes)))

	return &dto.ResolveConflictsResponse{Success: true, UpdatedCount: len(changes)}, nil
}

// toScoredEvent 活动快照 → 带评分 DTO
func toScoredEvent(e *model.Event, scores dto.EventScores, forcesSkipSet map[string]struct{}) dto.ScoredEvent {
	_, forcesSkip := forcesSkipSet[e.Status]

	scored := dto.ScoredEvent{
		EventGUID:  e.EventGUID,
		Title:      e.Title,
		EventDate:  e.EventDate.Format("2006-01-02"),
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		IsAllDay:   e.IsAllDay,
		Status:     e.Status,
		Attendance: e.Attendance,
		ForcesSkip: forcesSkip,
		Scores:     scores,
	}

	if cat := e.EffectiveCategory(); cat != nil {
		scored.Category = &dto.CategoryBrief{
			CategoryGUID: cat.CategoryGUID,
			Name:         cat.Name,
			Color:        cat.Color,
		}
	}
	if loc := e.EffectiveLocation(); loc != nil {
		scored.Location = &dto.LocationBrief{
			LocationGUID: loc.LocationGUID,
			Name:         loc.Name,
			City:         loc.City,
			Rating:       loc.Rating,
		}
	}
	if e.Organizer != nil {
		scored.Organizer = &dto.OrganizerBrief{
			OrganizerGUID: e.Organizer.OrganizerGUID,
			Name:          e.Organizer.Name,
			Rating:        e.Organizer.Rating,
		}
	}
	return scored
}
