package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shuttersense/backend/internal/model"
)

// OrganizerRepository 主办方数据访问接口
type OrganizerRepository interface {
	Create(ctx context.Context, org *model.Organizer) error
	GetByGUID(ctx context.Context, teamID, guid string) (*model.Organizer, error)
	List(ctx context.Context, teamID string, offset, limit int) ([]model.Organizer, int64, error)
	Update(ctx context.Context, org *model.Organizer) error
	Delete(ctx context.Context, teamID, guid, deletedBy string) error
}

type organizerRepo struct {
	db *gorm.DB
}

func NewOrganizerRepo(db *gorm.DB) OrganizerRepository {
	return &organizerRepo{db: db}
}

func (r *organizerRepo) Create(ctx context.Context, org *model.Organizer) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *organizerRepo) GetByGUID(ctx context.Context, teamID, guid string) (*model.Organizer, error) {
	var org model.Organizer
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND organizer_guid = ?", teamID, guid).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizerRepo) List(ctx context.Context, teamID string, offset, limit int) ([]model.Organizer, int64, error) {
	var orgs []model.Organizer
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Organizer{}).
		Where("team_id = ?", teamID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&orgs).Error
	return orgs, total, err
}

func (r *organizerRepo) Update(ctx context.Context, org *model.Organizer) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *organizerRepo) Delete(ctx context.Context, teamID, guid, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Organizer{}).
		Where("team_id = ? AND organizer_guid = ?", teamID, guid).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		}).Error
}
