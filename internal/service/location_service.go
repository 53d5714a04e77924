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

var ErrLocationNotFound = errors.New("地点不存在")

// LocationService 地点业务接口
type LocationService interface {
	Create(ctx context.Context, teamID, callerID string, req *dto.CreateLocationRequest) (*model.Location, error)
	Get(ctx context.Context, teamID, locationGUID string) (*model.Location, error)
	List(ctx context.Context, teamID string, page, pageSize int) ([]model.Location, *dto.Pagination, error)
	Update(ctx context.Context, teamID, locationGUID, callerID string, req *dto.UpdateLocationRequest) (*model.Location, error)
	Delete(ctx context.Context, teamID, locationGUID, callerID string) error
}

type locationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, logger: logger}
}

func (s *locationService) Create(ctx context.Context, teamID, callerID string, req *dto.CreateLocationRequest) (*model.Location, error) {
	loc := &model.Location{
		LocationGUID: guid.New(guid.PrefixLocation),
		TeamID:       teamID,
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Rating:       req.Rating,
		IsActive:     true,
	}
	loc.CreatedBy = &callerID
	loc.UpdatedBy = &callerID

	if err := s.repo.Location.Create(ctx, loc); err != nil {
		s.logger.Error("创建地点失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}
	return loc, nil
}

func (s *locationService) Get(ctx context.Context, teamID, locationGUID string) (*model.Location, error) {
	if !guid.Valid(locationGUID, guid.PrefixLocation) {
		return nil, ErrLocationNotFound
	}
	loc, err := s.repo.Location.GetByGUID(ctx, teamID, locationGUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return loc, nil
}

func (s *locationService) List(ctx context.Context, teamID string, page, pageSize int) ([]model.Location, *dto.Pagination, error) {
	offset := (page - 1) * pageSize
	locs, total, err := s.repo.Location.List(ctx, teamID, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return locs, &dto.Pagination{Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *locationService) Update(ctx context.Context, teamID, locationGUID, callerID string, req *dto.UpdateLocationRequest) (*model.Location, error) {
	loc, err := s.Get(ctx, teamID, locationGUID)
	if err != nil {
		return nil, err
	}

	loc.Name = req.Name
	loc.Address = req.Address
	loc.City = req.City
	loc.Latitude = req.Latitude
	loc.Longitude = req.Longitude
	loc.Rating = req.Rating
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	loc.UpdatedBy = &callerID

	if err := s.repo.Location.Update(ctx, loc); err != nil {
		s.logger.Error("更新地点失败", zap.Error(err), zap.String("location_guid", locationGUID))
		return nil, err
	}
	return loc, nil
}

func (s *locationService) Delete(ctx context.Context, teamID, locationGUID, callerID string) error {
	if _, err := s.Get(ctx, teamID, locationGUID); err != nil {
		return err
	}
	return s.repo.Location.Delete(ctx, teamID, locationGUID, callerID)
}
