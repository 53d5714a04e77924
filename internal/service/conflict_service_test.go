package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/model"
	"shuttersense/backend/pkg/guid"
)

const testTeamID = "0b7c4a9e-5f1d-4e2a-8c3b-1a2b3c4d5e6f"

func setupConflictService() (ConflictService, *mockEventRepo, *mockTeamSettingsRepo) {
	repo, eventRepo, settingsRepo := newMockRepository()
	logger := zap.NewNop()
	teamConfig := NewTeamConfigService(repo, logger)
	return NewConflictService(repo, teamConfig, logger), eventRepo, settingsRepo
}

func addEvent(repo *mockEventRepo, e model.Event) string {
	if e.EventGUID == "" {
		e.EventGUID = guid.New(guid.PrefixEvent)
	}
	if e.TeamID == "" {
		e.TeamID = testTeamID
	}
	if e.Status == "" {
		e.Status = "future"
	}
	if e.Attendance == "" {
		e.Attendance = model.AttendancePlanned
	}
	repo.events[e.EventGUID] = &e
	return e.EventGUID
}

// ── DetectConflicts ──

func TestDetectConflicts_InvalidDateRange(t *testing.T) {
	svc, _, _ := setupConflictService()

	cases := []struct{ start, end string }{
		{"2026-03-15", "2026-03-14"}, // end < start
		{"not-a-date", "2026-03-14"},
		{"2026-03-14", ""},
	}
	for _, tc := range cases {
		if _, err := svc.DetectConflicts(context.Background(), testTeamID, tc.start, tc.end); !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("(%q, %q) 期望 ErrInvalidDateRange，实际: %v", tc.start, tc.end, err)
		}
	}
}

func TestDetectConflicts_EmptyRangeStillPopulatesSummary(t *testing.T) {
	svc, _, _ := setupConflictService()

	resp, err := svc.DetectConflicts(context.Background(), testTeamID, "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("DetectConflicts 应成功: %v", err)
	}
	if len(resp.Groups) != 0 {
		t.Errorf("空区间不应有冲突组，实际 %d", len(resp.Groups))
	}
	if resp.Summary.TotalGroups != 0 {
		t.Errorf("汇总应为零值，实际 %+v", resp.Summary)
	}
	if resp.ScoredEvents == nil {
		t.Error("评分列表应为非 nil 空切片")
	}
}

// 场景：同日 09:00–12:00 与 11:00–14:00 两场活动
func TestDetectConflicts_SameDayOverlap(t *testing.T) {
	svc, eventRepo, _ := setupConflictService()
	day := date(2026, 3, 14)
	addEvent(eventRepo, model.Event{
		Title: "市中心婚礼", EventDate: day,
		StartTime: strPtr("09:00"), EndTime: strPtr("12:00"),
	})
	addEvent(eventRepo, model.Event{
		Title: "公园人像约拍", EventDate: day,
		StartTime: strPtr("11:00"), EndTime: strPtr("14:00"),
	})

	resp, err := svc.DetectConflicts(context.Background(), testTeamID, "2026-03-14", "2026-03-14")
	if err != nil {
		t.Fatalf("DetectConflicts 应成功: %v", err)
	}
	if len(resp.Groups) != 1 {
		t.Fatalf("期望 1 个冲突组，实际 %d", len(resp.Groups))
	}
	g := resp.Groups[0]
	if g.GroupID != "cg_1" {
		t.Errorf("期望组号 cg_1，实际 %s", g.GroupID)
	}
	if g.Status != GroupStatusUnresolved {
		t.Errorf("期望状态 unresolved，实际 %s", g.Status)
	}
	if len(g.Edges) != 1 || g.Edges[0].ConflictType != ConflictTypeTimeOverlap {
		t.Errorf("期望 1 条 time_overlap 边，实际 %+v", g.Edges)
	}
	if resp.Summary.TotalGroups != 1 || resp.Summary.Unresolved != 1 {
		t.Errorf("汇总错误: %+v", resp.Summary)
	}
	if len(resp.ScoredEvents) != 2 {
		t.Errorf("全量评分列表应含 2 场活动，实际 %d", len(resp.ScoredEvents))
	}
}

// 场景：连续两天分别在纽约与洛杉矶
func TestDetectConflicts_ConsecutiveDayDistance(t *testing.T) {
	svc, eventRepo, _ := setupConflictService()
	nyc := &model.Location{LocationGUID: "loc_nyc", Name: "纽约", Latitude: floatPtr(40.7128), Longitude: floatPtr(-74.0060)}
	la := &model.Location{LocationGUID: "loc_la", Name: "洛杉矶", Latitude: floatPtr(34.0522), Longitude: floatPtr(-118.2437)}

	addEvent(eventRepo, model.Event{
		Title: "纽约外拍", EventDate: date(2026, 3, 14),
		StartTime: strPtr("09:00"), EndTime: strPtr("10:00"), Location: nyc,
	})
	addEvent(eventRepo, model.Event{
		Title: "洛杉矶外拍", EventDate: date(2026, 3, 15),
		StartTime: strPtr("09:00"), EndTime: strPtr("10:00"), Location: la,
	})

	resp, err := svc.DetectConflicts(context.Background(), testTeamID, "2026-03-14", "2026-03-15")
	if err != nil {
		t.Fatalf("DetectConflicts 应成功: %v", err)
	}
	if len(resp.Groups) != 1 {
		t.Fatalf("期望 1 个冲突组，实际 %d", len(resp.Groups))
	}
	found := false
	for _, e := range resp.Groups[0].Edges {
		if e.ConflictType == ConflictTypeDistance {
			found = true
		}
	}
	if !found {
		t.Errorf("期望至少 1 条 distance 边，实际 %+v", resp.Groups[0].Edges)
	}
}

// 场景：两系列 5 场活动（纽约 周四/五/六 + 洛杉矶 周六/日），全部需差旅，
// consecutive_window=0、travel_buffer=3
func TestDetectConflicts_FiveEventProductionCase(t *testing.T) {
	svc, eventRepo, settingsRepo := setupConflictService()
	window := 0
	settingsRepo.settings[testTeamID] = &model.TeamSettings{
		TeamID:                testTeamID,
		ConsecutiveWindowDays: &window,
	}

	nyc := &model.Location{LocationGUID: "loc_nyc", Latitude: floatPtr(40.7128), Longitude: floatPtr(-74.0060)}
	la := &model.Location{LocationGUID: "loc_la", Latitude: floatPtr(34.0522), Longitude: floatPtr(-118.2437)}

	thu, fri, sat, sun := date(2026, 3, 12), date(2026, 3, 13), date(2026, 3, 14), date(2026, 3, 15)

	guidByDay := make(map[string][]string)
	for _, ev := range []struct {
		day time.Time
		loc *model.Location
	}{
		{thu, nyc}, {fri, nyc}, {sat, nyc}, {sat, la}, {sun, la},
	} {
		g := addEvent(eventRepo, model.Event{
			Title: "巡拍", EventDate: ev.day, Location: ev.loc,
			TravelRequired: boolPtr(true),
		})
		guidByDay[ev.day.Format("2006-01-02")] = append(guidByDay[ev.day.Format("2006-01-02")], g)
	}

	resp, err := svc.DetectConflicts(context.Background(), testTeamID, "2026-03-12", "2026-03-15")
	if err != nil {
		t.Fatalf("DetectConflicts 应成功: %v", err)
	}
	if len(resp.Groups) != 1 {
		t.Fatalf("5 场活动应聚为单个冲突组，实际 %d 组", len(resp.Groups))
	}
	g := resp.Groups[0]
	if len(g.Events) != 5 {
		t.Fatalf("组内应含 5 场活动，实际 %d", len(g.Events))
	}

	// 每条边计入其触及的每个日期
	dayOf := make(map[string]string)
	for day, guids := range guidByDay {
		for _, id := range guids {
			dayOf[id] = day
		}
	}
	edgesPerDay := make(map[string]int)
	for _, e := range g.Edges {
		dayA, dayB := dayOf[e.EventAGUID], dayOf[e.EventBGUID]
		edgesPerDay[dayA]++
		if dayB != dayA {
			edgesPerDay[dayB]++
		}
	}
	want := map[string]int{
		thu.Format("2006-01-02"): 1,
		fri.Format("2006-01-02"): 2,
		sat.Format("2006-01-02"): 6,
		sun.Format("2006-01-02"): 2,
	}
	for day, n := range want {
		if edgesPerDay[day] != n {
			t.Errorf("日期 %s 期望 %d 条边，实际 %d", day, n, edgesPerDay[day])
		}
	}

	// 跳过两场洛杉矶活动 → 组完全解决
	laGUIDs := append([]string{}, guidByDay[sat.Format("2006-01-02")]...)
	laEvents := []string{}
	for _, id := range laGUIDs {
		if eventRepo.events[id].Location == la {
			laEvents = append(laEvents, id)
		}
	}
	laEvents = append(laEvents, guidByDay[sun.Format("2006-01-02")]...)
	if len(laEvents) != 2 {
		t.Fatalf("应有 2 场洛杉矶活动，实际 %d", len(laEvents))
	}
	for _, id := range laEvents {
		eventRepo.events[id].Attendance = model.AttendanceSkipped
	}

	resp, err = svc.DetectConflicts(context.Background(), testTeamID, "2026-03-12", "2026-03-15")
	if err != nil {
		t.Fatalf("DetectConflicts 应成功: %v", err)
	}
	if resp.Groups[0].Status != GroupStatusResolved {
		t.Errorf("跳过两场洛杉矶活动应完全解决，实际 %s", resp.Groups[0].Status)
	}

	// 恢复其中一场 → 回到部分解决，绝不应仍为 resolved
	eventRepo.events[laEvents[0]].Attendance = model.AttendancePlanned
	resp, _ = svc.DetectConflicts(context.Background(), testTeamID, "2026-03-12", "2026-03-15")
	status := resp.Groups[0].Status
	if status == GroupStatusResolved {
		t.Errorf("仍有未解决边时不应为 resolved，实际 %s", status)
	}
}

// ── GetEventScores ──

func TestGetEventScores_Success(t *testing.T) {
	svc, eventRepo, _ := setupConflictService()
	eventGUID := addEvent(eventRepo, model.Event{
		Title: "画廊开幕", EventDate: date(2026, 3, 14),
		Location:  &model.Location{LocationGUID: "loc_x", Rating: floatPtr(4)},
		Organizer: &model.Organizer{OrganizerGUID: "org_x", Rating: floatPtr(5)},
	})

	scores, err := svc.GetEventScores(context.Background(), testTeamID, eventGUID)
	if err != nil {
		t.Fatalf("GetEventScores 应成功: %v", err)
	}
	if scores.VenueQuality != 80 || scores.OrganizerReputation != 100 {
		t.Errorf("评分错误: %+v", scores)
	}
}

func TestGetEventScores_InvalidPrefixIndistinguishableFromNotFound(t *testing.T) {
	svc, eventRepo, _ := setupConflictService()
	addEvent(eventRepo, model.Event{Title: "活动", EventDate: date(2026, 3, 14)})

	cases := []string{
		"loc_9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", // 前缀错误
		"evt_not-a-uuid",                           // UUID 非法
		guid.New(guid.PrefixEvent),                 // 格式合法但无记录
	}
	for _, g := range cases {
		if _, err := svc.GetEventScores(context.Background(), testTeamID, g); !errors.Is(err, ErrEventNotFound) {
			t.Errorf("GUID %q 期望 ErrEventNotFound，实际: %v", g, err)
		}
	}
}

func TestGetEventScores_CrossTenantIsNotFound(t *testing.T) {
	svc, eventRepo, _ := setupConflictService()
	eventGUID := addEvent(eventRepo, model.Event{
		TeamID: "another-team", Title: "他团活动", EventDate: date(2026, 3, 14),
	})

	if _, err := svc.GetEventScores(context.Background(), testTeamID, eventGUID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("跨团队查询应不可区分于不存在，实际: %v", err)
	}
}

// ── ResolveConflicts ──

func TestResolveConflicts_EmptyDecisions(t *testing.T) {
	svc, _, _ := setupConflictService()
	_, err := svc.ResolveConflicts(context.Background(), testTeamID, "user-1", &dto.ResolveConflictsRequest{})
	if !errors.Is(err, ErrNoDecisions) {
		t.Errorf("期望 ErrNoDecisions，实际: %v", err)
	}
}

func TestResolveConflicts_ValidationErrors(t *testing.T) {
	svc, eventRepo, _ := setupConflictService()
	eventGUID := addEvent(eventRepo, model.Event{Title: "活动", EventDate: date(2026, 3, 14)})

	cases := []struct {
		name     string
		decision dto.ResolutionDecision
		wantErr  error
	}{
		{"缺少 GUID", dto.ResolutionDecision{Attendance: "skipped"}, ErrDecisionIncomplete},
		{"缺少出席状态", dto.ResolutionDecision{EventGUID: eventGUID}, ErrDecisionIncomplete},
		{"出席状态非法", dto.ResolutionDecision{EventGUID: eventGUID, Attendance: "maybe"}, ErrInvalidAttendance},
		{"GUID 前缀非法", dto.ResolutionDecision{EventGUID: "cat_9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", Attendance: "skipped"}, ErrEventNotFound},
		{"活动不存在", dto.ResolutionDecision{EventGUID: guid.New(guid.PrefixEvent), Attendance: "skipped"}, ErrEventNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &dto.ResolveConflictsRequest{Decisions: []dto.ResolutionDecision{tc.decision}}
			if _, err := svc.ResolveConflicts(context.Background(), testTeamID, "user-1", req); !errors.Is(err, tc.wantErr) {
				t.Errorf("期望 %v，实际: %v", tc.wantErr, err)
			}
		})
	}
}

func TestResolveConflicts_ForcesSkipLock(t *testing.T) {
	svc, eventRepo, _ := setupConflictService()
	// 默认强制跳过集合为 {cancelled}
	eventGUID := addEvent(eventRepo, model.Event{
		Title: "被取消的活动", EventDate: date(2026, 3, 14), Status: "cancelled",
	})

	// 非 skipped 的决策被拒
	req := &dto.ResolveConflictsRequest{Decisions: []dto.ResolutionDecision{
		{EventGUID: eventGUID, Attendance: model.AttendancePlanned},
	}}
	if _, err := svc.ResolveConflicts(context.Background(), testTeamID, "user-1", req); !errors.Is(err, ErrAttendanceLocked) {
		t.Errorf("期望 ErrAttendanceLocked，实际: %v", err)
	}

	// skipped 决策放行
	req = &dto.ResolveConflictsRequest{Decisions: []dto.ResolutionDecision{
		{EventGUID: eventGUID, Attendance: model.AttendanceSkipped},
	}}
	resp, err := svc.ResolveConflicts(context.Background(), testTeamID, "user-1", req)
	if err != nil {
		t.Fatalf("skipped 决策应放行: %v", err)
	}
	if resp.UpdatedCount != 1 {
		t.Errorf("期望更新 1 条，实际 %d", resp.UpdatedCount)
	}
}

func TestResolveConflicts_CountsOnlyActualChanges(t *testing.T) {
	svc, eventRepo, _ := setupConflictService()
	unchanged := addEvent(eventRepo, model.Event{Title: "甲", EventDate: date(2026, 3, 14)}) // planned
	changed := addEvent(eventRepo, model.Event{Title: "乙", EventDate: date(2026, 3, 14)})

	req := &dto.ResolveConflictsRequest{Decisions: []dto.ResolutionDecision{
		{EventGUID: unchanged, Attendance: model.AttendancePlanned}, // 无变化
		{EventGUID: changed, Attendance: model.AttendanceSkipped},
	}}
	resp, err := svc.ResolveConflicts(context.Background(), testTeamID, "user-1", req)
	if err != nil {
		t.Fatalf("ResolveConflicts 应成功: %v", err)
	}
	if !resp.Success || resp.UpdatedCount != 1 {
		t.Errorf("期望 updated_count=1，实际 %+v", resp)
	}
	if eventRepo.events[changed].Attendance != model.AttendanceSkipped {
		t.Error("乙的出席状态应已更新")
	}
}

func TestResolveConflicts_AllOrNothing(t *testing.T) {
	svc, eventRepo, _ := setupConflictService()
	valid := addEvent(eventRepo, model.Event{Title: "有效活动", EventDate: date(2026, 3, 14)})

	// 首条有效、次条非法 → 整批中止，首条也不得生效
	req := &dto.ResolveConflictsRequest{Decisions: []dto.ResolutionDecision{
		{EventGUID: valid, Attendance: model.AttendanceSkipped},
		{EventGUID: "", Attendance: model.AttendanceSkipped},
	}}
	if _, err := svc.ResolveConflicts(context.Background(), testTeamID, "user-1", req); !errors.Is(err, ErrDecisionIncomplete) {
		t.Fatalf("期望 ErrDecisionIncomplete，实际: %v", err)
	}
	if eventRepo.events[valid].Attendance != model.AttendancePlanned {
		t.Error("校验失败时任何决策都不应落库")
	}
}
