package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shuttersense/backend/internal/model"
)

// LocationRepository 地点数据访问接口
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) error
	GetByGUID(ctx context.Context, teamID, guid string) (*model.Location, error)
	List(ctx context.Context, teamID string, offset, limit int) ([]model.Location, int64, error)
	Update(ctx context.Context, loc *model.Location) error
	Delete(ctx context.Context, teamID, guid, deletedBy string) error
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *locationRepo) GetByGUID(ctx context.Context, teamID, guid string) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND location_guid = ?", teamID, guid).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) List(ctx context.Context, teamID string, offset, limit int) ([]model.Location, int64, error) {
	var locs []model.Location
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Location{}).
		Where("team_id = ?", teamID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&locs).Error
	return locs, total, err
}

func (r *locationRepo) Update(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

func (r *locationRepo) Delete(ctx context.Context, teamID, guid, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Location{}).
		Where("team_id = ? AND location_guid = ?", teamID, guid).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		}).Error
}
