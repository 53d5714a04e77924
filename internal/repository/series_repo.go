package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shuttersense/backend/internal/model"
)

// EventSeriesRepository 活动系列数据访问接口
type EventSeriesRepository interface {
	Create(ctx context.Context, series *model.EventSeries) error
	GetByGUID(ctx context.Context, teamID, guid string) (*model.EventSeries, error)
	List(ctx context.Context, teamID string) ([]model.EventSeries, error)
	Update(ctx context.Context, series *model.EventSeries) error
	Delete(ctx context.Context, teamID, guid, deletedBy string) error
}

type eventSeriesRepo struct {
	db *gorm.DB
}

func NewEventSeriesRepo(db *gorm.DB) EventSeriesRepository {
	return &eventSeriesRepo{db: db}
}

func (r *eventSeriesRepo) Create(ctx context.Context, series *model.EventSeries) error {
	return r.db.WithContext(ctx).Create(series).Error
}

func (r *eventSeriesRepo) GetByGUID(ctx context.Context, teamID, guid string) (*model.EventSeries, error) {
	var series model.EventSeries
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Location").
		Where("team_id = ? AND series_guid = ?", teamID, guid).
		First(&series).Error
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *eventSeriesRepo) List(ctx context.Context, teamID string) ([]model.EventSeries, error) {
	var list []model.EventSeries
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Location").
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *eventSeriesRepo) Update(ctx context.Context, series *model.EventSeries) error {
	return r.db.WithContext(ctx).Save(series).Error
}

func (r *eventSeriesRepo) Delete(ctx context.Context, teamID, guid, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.EventSeries{}).
		Where("team_id = ? AND series_guid = ?", teamID, guid).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		}).Error
}
