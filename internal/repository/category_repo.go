package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shuttersense/backend/internal/model"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	Create(ctx context.Context, cat *model.Category) error
	GetByGUID(ctx context.Context, teamID, guid string) (*model.Category, error)
	List(ctx context.Context, teamID string) ([]model.Category, error)
	Update(ctx context.Context, cat *model.Category) error
	Delete(ctx context.Context, teamID, guid, deletedBy string) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *categoryRepo) GetByGUID(ctx context.Context, teamID, guid string) (*model.Category, error) {
	var cat model.Category
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND category_guid = ?", teamID, guid).
		First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepo) List(ctx context.Context, teamID string) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&cats).Error
	return cats, err
}

func (r *categoryRepo) Update(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

func (r *categoryRepo) Delete(ctx context.Context, teamID, guid, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("team_id = ? AND category_guid = ?", teamID, guid).
		Updates(map[string]interface{}{
			"deleted_at": time.Now(),
			"deleted_by": deletedBy,
		}).Error
}
