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
	pkgerrors "shuttersense/backend/pkg/errors"
	"shuttersense/backend/pkg/guid"
)

// ── 活动模块业务错误 ──

var (
	ErrInvalidEventDate = errors.New("活动日期格式无效")
	ErrInvalidTimeRange = errors.New("起止时间无效")
	ErrVersionConflict  = errors.New("活动已被他人修改，请刷新后重试")
	ErrSeriesNotFound   = errors.New("活动系列不存在")
)

// EventService 活动业务接口
type EventService interface {
	Create(ctx context.Context, teamID, callerID string, req *dto.CreateEventRequest) (*model.Event, error)
	Get(ctx context.Context, teamID, eventGUID string) (*model.Event, error)
	List(ctx context.Context, teamID string, req *dto.ListEventsRequest) ([]model.Event, *dto.Pagination, error)
	Update(ctx context.Context, teamID, eventGUID, callerID string, req *dto.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, teamID, eventGUID, callerID string) error
	ReplacePerformers(ctx context.Context, teamID, eventGUID, callerID string, performers []dto.PerformerInput) (*model.Event, error)
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, teamID, callerID string, req *dto.CreateEventRequest) (*model.Event, error) {
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, ErrInvalidEventDate
	}
	if err := validateTimeRange(req.StartTime, req.EndTime, req.IsAllDay); err != nil {
		return nil, err
	}

	if req.SeriesGUID != nil {
		if _, err := s.repo.EventSeries.GetByGUID(ctx, teamID, *req.SeriesGUID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSeriesNotFound
			}
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = "future"
	}

	event := &model.Event{
		EventGUID:       guid.New(guid.PrefixEvent),
		TeamID:          teamID,
		SeriesGUID:      req.SeriesGUID,
		Title:           req.Title,
		EventDate:       eventDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		IsAllDay:        req.IsAllDay,
		IsDeadline:      req.IsDeadline,
		Status:          status,
		Attendance:      model.AttendancePlanned,
		TravelRequired:  req.TravelRequired,
		TravelStatus:    req.TravelStatus,
		TicketRequired:  req.TicketRequired,
		TicketStatus:    req.TicketStatus,
		TimeoffRequired: req.TimeoffRequired,
		TimeoffStatus:   req.TimeoffStatus,
		CategoryGUID:    req.CategoryGUID,
		LocationGUID:    req.LocationGUID,
		OrganizerGUID:   req.OrganizerGUID,
	}
	event.CreatedBy = &callerID
	event.UpdatedBy = &callerID

	for _, p := range req.Performers {
		status := p.Status
		if status == "" {
			status = model.PerformerStatusInvited
		}
		event.Performers = append(event.Performers, model.Performer{
			PerformerGUID: guid.New(guid.PrefixPerformer),
			EventGUID:     event.EventGUID,
			Name:          p.Name,
			Status:        status,
		})
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建活动失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}

	s.logger.Info("活动已创建",
		zap.String("event_guid", event.EventGUID),
		zap.String("team_id", teamID))

	return s.Get(ctx, teamID, event.EventGUID)
}

func (s *eventService) Get(ctx context.Context, teamID, eventGUID string) (*model.Event, error) {
	if !guid.Valid(eventGUID, guid.PrefixEvent) {
		return nil, ErrEventNotFound
	}
	event, err := s.repo.Event.GetByGUID(ctx, teamID, eventGUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, teamID string, req *dto.ListEventsRequest) ([]model.Event, *dto.Pagination, error) {
	offset := (req.Page - 1) * req.PageSize
	events, total, err := s.repo.Event.List(ctx, teamID, offset, req.PageSize)
	if err != nil {
		return nil, nil, err
	}
	return events, &dto.Pagination{Page: req.Page, PageSize: req.PageSize, Total: total}, nil
}

func (s *eventService) Update(ctx context.Context, teamID, eventGUID, callerID string, req *dto.UpdateEventRequest) (*model.Event, error) {
	event, err := s.Get(ctx, teamID, eventGUID)
	if err != nil {
		return nil, err
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, ErrInvalidEventDate
	}
	if err := validateTimeRange(req.StartTime, req.EndTime, req.IsAllDay); err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.EventDate = eventDate
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.IsAllDay = req.IsAllDay
	event.IsDeadline = req.IsDeadline
	if req.Status != "" {
		event.Status = req.Status
	}
	if req.Attendance != "" {
		event.Attendance = req.Attendance
	}
	event.SeriesGUID = req.SeriesGUID
	event.CategoryGUID = req.CategoryGUID
	event.LocationGUID = req.LocationGUID
	event.OrganizerGUID = req.OrganizerGUID
	event.TravelRequired = req.TravelRequired
	event.TravelStatus = req.TravelStatus
	event.TicketRequired = req.TicketRequired
	event.TicketStatus = req.TicketStatus
	event.TimeoffRequired = req.TimeoffRequired
	event.TimeoffStatus = req.TimeoffStatus
	event.UpdatedBy = &callerID
	event.Version = req.Version

	if err := s.repo.Event.Update(ctx, event); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrVersionConflict
		}
		s.logger.Error("更新活动失败", zap.Error(err), zap.String("event_guid", eventGUID))
		return nil, err
	}

	return s.Get(ctx, teamID, eventGUID)
}

func (s *eventService) Delete(ctx context.Context, teamID, eventGUID, callerID string) error {
	if _, err := s.Get(ctx, teamID, eventGUID); err != nil {
		return err
	}
	if err := s.repo.Event.Delete(ctx, teamID, eventGUID, callerID); err != nil {
		s.logger.Error("删除活动失败", zap.Error(err), zap.String("event_guid", eventGUID))
		return err
	}
	s.logger.Info("活动已删除",
		zap.String("event_guid", eventGUID),
		zap.String("caller_id", callerID))
	return nil
}

func (s *eventService) ReplacePerformers(ctx context.Context, teamID, eventGUID, callerID string, performers []dto.PerformerInput) (*model.Event, error) {
	if _, err := s.Get(ctx, teamID, eventGUID); err != nil {
		return nil, err
	}

	records := make([]model.Performer, 0, len(performers))
	for _, p := range performers {
		status := p.Status
		if status == "" {
			status = model.PerformerStatusInvited
		}
		records = append(records, model.Performer{
			PerformerGUID: guid.New(guid.PrefixPerformer),
			EventGUID:     eventGUID,
			Name:          p.Name,
			Status:        status,
		})
	}

	if err := s.repo.Event.ReplacePerformers(ctx, eventGUID, records); err != nil {
		s.logger.Error("更新表演者失败", zap.Error(err), zap.String("event_guid", eventGUID))
		return nil, err
	}
	return s.Get(ctx, teamID, eventGUID)
}

// validateTimeRange 起止时间校验：全天活动忽略时段；
// 非全天时允许缺省（检测轮按保守重叠处理），但若两端俱全则要求 start < end。
func validateTimeRange(start, end *string, isAllDay bool) error {
	if isAllDay {
		return nil
	}
	if start != nil && end != nil && *start >= *end {
		return ErrInvalidTimeRange
	}
	return nil
}
