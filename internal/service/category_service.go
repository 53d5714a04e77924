package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/model"
	"shuttersense/backend/internal/repository"
	"shuttersense/backend/pkg/guid"
)

var ErrCategoryNotFound = errors.New("分类不存在")

// CategoryService 分类与活动系列业务接口
type CategoryService interface {
	CreateCategory(ctx context.Context, teamID, callerID string, req *dto.CreateCategoryRequest) (*model.Category, error)
	GetCategory(ctx context.Context, teamID, categoryGUID string) (*model.Category, error)
	ListCategories(ctx context.Context, teamID string) ([]model.Category, error)
	UpdateCategory(ctx context.Context, teamID, categoryGUID, callerID string, req *dto.UpdateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, teamID, categoryGUID, callerID string) error

	CreateSeries(ctx context.Context, teamID, callerID string, req *dto.CreateSeriesRequest) (*model.EventSeries, error)
	GetSeries(ctx context.Context, teamID, seriesGUID string) (*model.EventSeries, error)
	ListSeries(ctx context.Context, teamID string) ([]model.EventSeries, error)
	UpdateSeries(ctx context.Context, teamID, seriesGUID, callerID string, req *dto.UpdateSeriesRequest) (*model.EventSeries, error)
	DeleteSeries(ctx context.Context, teamID, seriesGUID, callerID string) error
}

type categoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(repo *repository.Repository, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, logger: logger}
}

// ── 分类 ──

func (s *categoryService) CreateCategory(ctx context.Context, teamID, callerID string, req *dto.CreateCategoryRequest) (*model.Category, error) {
	cat := &model.Category{
		CategoryGUID: guid.New(guid.PrefixCategory),
		TeamID:       teamID,
		Name:         req.Name,
		Color:        req.Color,
	}
	cat.CreatedBy = &callerID
	cat.UpdatedBy = &callerID

	if err := s.repo.Category.Create(ctx, cat); err != nil {
		s.logger.Error("创建分类失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) GetCategory(ctx context.Context, teamID, categoryGUID string) (*model.Category, error) {
	if !guid.Valid(categoryGUID, guid.PrefixCategory) {
		return nil, ErrCategoryNotFound
	}
	cat, err := s.repo.Category.GetByGUID(ctx, teamID, categoryGUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) ListCategories(ctx context.Context, teamID string) ([]model.Category, error) {
	return s.repo.Category.List(ctx, teamID)
}

func (s *categoryService) UpdateCategory(ctx context.Context, teamID, categoryGUID, callerID string, req *dto.UpdateCategoryRequest) (*model.Category, error) {
	cat, err := s.GetCategory(ctx, teamID, categoryGUID)
	if err != nil {
		return nil, err
	}

	cat.Name = req.Name
	cat.Color = req.Color
	cat.UpdatedBy = &callerID

	if err := s.repo.Category.Update(ctx, cat); err != nil {
		s.logger.Error("更新分类失败", zap.Error(err), zap.String("category_guid", categoryGUID))
		return nil, err
	}
	return cat, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, teamID, categoryGUID, callerID string) error {
	if _, err := s.GetCategory(ctx, teamID, categoryGUID); err != nil {
		return err
	}
	return s.repo.Category.Delete(ctx, teamID, categoryGUID, callerID)
}

// ── 活动系列 ──

func (s *categoryService) CreateSeries(ctx context.Context, teamID, callerID string, req *dto.CreateSeriesRequest) (*model.EventSeries, error) {
	series := &model.EventSeries{
		SeriesGUID:   guid.New(guid.PrefixSeries),
		TeamID:       teamID,
		Name:         req.Name,
		CategoryGUID: req.CategoryGUID,
		LocationGUID: req.LocationGUID,
	}
	series.CreatedBy = &callerID
	series.UpdatedBy = &callerID

	if err := s.repo.EventSeries.Create(ctx, series); err != nil {
		s.logger.Error("创建活动系列失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}
	return s.GetSeries(ctx, teamID, series.SeriesGUID)
}

func (s *categoryService) GetSeries(ctx context.Context, teamID, seriesGUID string) (*model.EventSeries, error) {
	if !guid.Valid(seriesGUID, guid.PrefixSeries) {
		return nil, ErrSeriesNotFound
	}
	series, err := s.repo.EventSeries.GetByGUID(ctx, teamID, seriesGUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}
	return series, nil
}

func (s *categoryService) ListSeries(ctx context.Context, teamID string) ([]model.EventSeries, error) {
	return s.repo.EventSeries.List(ctx, teamID)
}

func (s *categoryService) UpdateSeries(ctx context.Context, teamID, seriesGUID, callerID string, req *dto.UpdateSeriesRequest) (*model.EventSeries, error) {
	series, err := s.GetSeries(ctx, teamID, seriesGUID)
	if err != nil {
		return nil, err
	}

	series.Name = req.Name
	series.CategoryGUID = req.CategoryGUID
	series.LocationGUID = req.LocationGUID
	series.UpdatedBy = &callerID

	if err := s.repo.EventSeries.Update(ctx, series); err != nil {
		s.logger.Error("更新活动系列失败", zap.Error(err), zap.String("series_guid", seriesGUID))
		return nil, err
	}
	return s.GetSeries(ctx, teamID, seriesGUID)
}

func (s *categoryService) DeleteSeries(ctx context.Context, teamID, seriesGUID, callerID string) error {
	if _, err := s.GetSeries(ctx, teamID, seriesGUID); err != nil {
		return err
	}
	return s.repo.EventSeries.Delete(ctx, teamID, seriesGUID, callerID)
}
