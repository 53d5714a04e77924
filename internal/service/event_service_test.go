package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/model"
	"shuttersense/backend/pkg/guid"
)

func setupEventService() (EventService, *mockEventRepo) {
	repo, eventRepo, _ := newMockRepository()
	return NewEventService(repo, zap.NewNop()), eventRepo
}

func TestEventService_Create_Success(t *testing.T) {
	svc, eventRepo := setupEventService()

	result, err := svc.Create(context.Background(), testTeamID, "user-1", &dto.CreateEventRequest{
		Title:     "品牌发布会拍摄",
		EventDate: "2026-04-01",
		StartTime: strPtr("10:00"),
		EndTime:   strPtr("12:00"),
		Performers: []dto.PerformerInput{
			{Name: "主持人", Status: model.PerformerStatusConfirmed},
			{Name: "乐队"},
		},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !guid.Valid(result.EventGUID, guid.PrefixEvent) {
		t.Errorf("GUID 前缀应为 evt_，实际 %s", result.EventGUID)
	}
	if result.Status != "future" || result.Attendance != model.AttendancePlanned {
		t.Errorf("初始状态错误: status=%s attendance=%s", result.Status, result.Attendance)
	}
	if len(eventRepo.events[result.EventGUID].Performers) != 2 {
		t.Errorf("应创建 2 名表演者")
	}
	// 未指定状态的表演者默认 invited
	if result.Performers[1].Status != model.PerformerStatusInvited {
		t.Errorf("表演者默认状态应为 invited，实际 %s", result.Performers[1].Status)
	}
}

func TestEventService_Create_InvalidDate(t *testing.T) {
	svc, _ := setupEventService()

	_, err := svc.Create(context.Background(), testTeamID, "user-1", &dto.CreateEventRequest{
		Title: "活动", EventDate: "04/01/2026",
	})
	if !errors.Is(err, ErrInvalidEventDate) {
		t.Errorf("期望 ErrInvalidEventDate，实际: %v", err)
	}
}

func TestEventService_Create_InvalidTimeRange(t *testing.T) {
	svc, _ := setupEventService()

	_, err := svc.Create(context.Background(), testTeamID, "user-1", &dto.CreateEventRequest{
		Title: "活动", EventDate: "2026-04-01",
		StartTime: strPtr("14:00"), EndTime: strPtr("12:00"),
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际: %v", err)
	}
}

func TestEventService_Create_AllDayIgnoresTimes(t *testing.T) {
	svc, _ := setupEventService()

	_, err := svc.Create(context.Background(), testTeamID, "user-1", &dto.CreateEventRequest{
		Title: "全天活动", EventDate: "2026-04-01",
		IsAllDay:  true,
		StartTime: strPtr("14:00"), EndTime: strPtr("12:00"),
	})
	if err != nil {
		t.Errorf("全天活动应忽略时段校验: %v", err)
	}
}

func TestEventService_Create_SeriesMustExist(t *testing.T) {
	svc, _ := setupEventService()
	missing := guid.New(guid.PrefixSeries)

	_, err := svc.Create(context.Background(), testTeamID, "user-1", &dto.CreateEventRequest{
		Title: "系列活动", EventDate: "2026-04-01", SeriesGUID: &missing,
	})
	if !errors.Is(err, ErrSeriesNotFound) {
		t.Errorf("期望 ErrSeriesNotFound，实际: %v", err)
	}
}

func TestEventService_Get_NotFound(t *testing.T) {
	svc, _ := setupEventService()

	if _, err := svc.Get(context.Background(), testTeamID, guid.New(guid.PrefixEvent)); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("期望 ErrEventNotFound，实际: %v", err)
	}
	if _, err := svc.Get(context.Background(), testTeamID, "bad-guid"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("非法 GUID 期望 ErrEventNotFound，实际: %v", err)
	}
}

func TestEventService_Delete_SoftDeleteHidesEvent(t *testing.T) {
	svc, eventRepo := setupEventService()
	eventGUID := addEvent(eventRepo, model.Event{Title: "待删活动", EventDate: date(2026, 4, 1)})

	if err := svc.Delete(context.Background(), testTeamID, eventGUID, "user-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.Get(context.Background(), testTeamID, eventGUID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("软删除后应不可见，实际: %v", err)
	}
}
