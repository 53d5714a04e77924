package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shuttersense/backend/internal/model"
	pkgerrors "shuttersense/backend/pkg/errors"
)

// AttendanceChange 批量出席变更项（由 Service 校验后传入）
type AttendanceChange struct {
	EventGUID  string
	Attendance string
	UpdatedBy  string
}

// EventRepository 活动数据访问接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	BatchCreate(ctx context.Context, events []model.Event) error
	GetByGUID(ctx context.Context, teamID, guid string) (*model.Event, error)
	// ListInRange 返回区间内未删除、非截止日类型的活动（含全部关联）
	ListInRange(ctx context.Context, teamID string, start, end time.Time) ([]model.Event, error)
	List(ctx context.Context, teamID string, offset, limit int) ([]model.Event, int64, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, teamID, guid, deletedBy string) error
	// BatchUpdateAttendance 在单个事务中应用全部出席变更；任一失败则整体回滚
	BatchUpdateAttendance(ctx context.Context, changes []AttendanceChange) error
	ReplacePerformers(ctx context.Context, eventGUID string, performers []model.Performer) error
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

// withRelations 活动常用关联预加载（含系列回退所需的系列地点/分类）
func (r *eventRepo) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Series").
		Preload("Series.Location").
		Preload("Series.Category").
		Preload("Category").
		Preload("Location").
		Preload("Organizer").
		Preload("Performers")
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) BatchCreate(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&events).Error
}

func (r *eventRepo) GetByGUID(ctx context.Context, teamID, guid string) (*model.Event, error) {
	var event model.Event
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("team_id = ? AND event_guid = ?", teamID, guid).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) ListInRange(ctx context.Context, teamID string, start, end time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("team_id = ? AND event_date >= ? AND event_date <= ? AND is_deadline = ?",
			teamID, start, end, false).
		Order("event_date ASC, event_guid ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) List(ctx context.Context, teamID string, offset, limit int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("team_id = ?", teamID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.withRelations(db).
		Offset(offset).Limit(limit).
		Order("event_date ASC, event_guid ASC").
		Find(&events).Error
	return events, total, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	oldVersion := event.Version
	result := r.db.WithContext(ctx).
		Model(event).
		Where("event_guid = ? AND version = ?", event.EventGUID, oldVersion).
		Updates(map[string]interface{}{
			"series_guid":      event.SeriesGUID,
			"title":            event.Title,
			"event_date":       event.EventDate,
			"start_time":       event.StartTime,
			"end_time":         event.EndTime,
			"is_all_day":       event.IsAllDay,
			"is_deadline":      event.IsDeadline,
			"status":           event.Status,
			"attendance":       event.Attendance,
			"travel_required":  event.TravelRequired,
			"travel_status":    event.TravelStatus,
			"ticket_required":  event.TicketRequired,
			"ticket_status":    event.TicketStatus,
			"timeoff_required": event.TimeoffRequired,
			"timeoff_status":   event.TimeoffStatus,
			"category_guid":    event.CategoryGUID,
			"location_guid":    event.LocationGUID,
			"organizer_guid":   event.OrganizerGUID,
			"updated_by":       event.UpdatedBy,
			"version":          oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version = oldVersion + 1
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, teamID, guid, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("team_id = ? AND event_guid = ?", teamID, guid).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		}).Error
}

func (r *eventRepo) BatchUpdateAttendance(ctx context.Context, changes []AttendanceChange) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ch := range changes {
			result := tx.Model(&model.Event{}).
				Where("event_guid = ?", ch.EventGUID).
				Updates(map[string]interface{}{
					"attendance": ch.Attendance,
					"updated_by": ch.UpdatedBy,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *eventRepo) ReplacePerformers(ctx context.Context, eventGUID string, performers []model.Performer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_guid = ?", eventGUID).Delete(&model.Performer{}).Error; err != nil {
			return err
		}
		if len(performers) == 0 {
			return nil
		}
		return tx.Create(&performers).Error
	})
}
