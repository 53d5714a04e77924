package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shuttersense/backend/internal/model"
)

// TeamSettingsRepository 团队配置数据访问接口
// 每团队至多一行；不存在视为全部键未覆盖。
type TeamSettingsRepository interface {
	// Get 返回团队配置行；不存在时返回 (nil, nil)
	Get(ctx context.Context, teamID string) (*model.TeamSettings, error)
	Upsert(ctx context.Context, settings *model.TeamSettings) error
}

type teamSettingsRepo struct {
	db *gorm.DB
}

func NewTeamSettingsRepo(db *gorm.DB) TeamSettingsRepository {
	return &teamSettingsRepo{db: db}
}

func (r *teamSettingsRepo) Get(ctx context.Context, teamID string) (*model.TeamSettings, error) {
	var settings model.TeamSettings
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *teamSettingsRepo) Upsert(ctx context.Context, settings *model.TeamSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
}
