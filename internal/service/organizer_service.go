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

var ErrOrganizerNotFound = errors.New("主办方不存在")

// OrganizerService 主办方业务接口
type OrganizerService interface {
	Create(ctx context.Context, teamID, callerID string, req *dto.CreateOrganizerRequest) (*model.Organizer, error)
	Get(ctx context.Context, teamID, organizerGUID string) (*model.Organizer, error)
	List(ctx context.Context, teamID string, page, pageSize int) ([]model.Organizer, *dto.Pagination, error)
	Update(ctx context.Context, teamID, organizerGUID, callerID string, req *dto.UpdateOrganizerRequest) (*model.Organizer, error)
	Delete(ctx context.Context, teamID, organizerGUID, callerID string) error
}

type organizerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOrganizerService 创建 OrganizerService 实例
func NewOrganizerService(repo *repository.Repository, logger *zap.Logger) OrganizerService {
	return &organizerService{repo: repo, logger: logger}
}

func (s *organizerService) Create(ctx context.Context, teamID, callerID string, req *dto.CreateOrganizerRequest) (*model.Organizer, error) {
	org := &model.Organizer{
		OrganizerGUID: guid.New(guid.PrefixOrganizer),
		TeamID:        teamID,
		Name:          req.Name,
		Email:         req.Email,
		Website:       req.Website,
		Rating:        req.Rating,
	}
	org.CreatedBy = &callerID
	org.UpdatedBy = &callerID

	if err := s.repo.Organizer.Create(ctx, org); err != nil {
		s.logger.Error("创建主办方失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}
	return org, nil
}

func (s *organizerService) Get(ctx context.Context, teamID, organizerGUID string) (*model.Organizer, error) {
	if !guid.Valid(organizerGUID, guid.PrefixOrganizer) {
		return nil, ErrOrganizerNotFound
	}
	org, err := s.repo.Organizer.GetByGUID(ctx, teamID, organizerGUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizerNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *organizerService) List(ctx context.Context, teamID string, page, pageSize int) ([]model.Organizer, *dto.Pagination, error) {
	offset := (page - 1) * pageSize
	orgs, total, err := s.repo.Organizer.List(ctx, teamID, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return orgs, &dto.Pagination{Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *organizerService) Update(ctx context.Context, teamID, organizerGUID, callerID string, req *dto.UpdateOrganizerRequest) (*model.Organizer, error) {
	org, err := s.Get(ctx, teamID, organizerGUID)
	if err != nil {
		return nil, err
	}

	org.Name = req.Name
	org.Email = req.Email
	org.Website = req.Website
	org.Rating = req.Rating
	org.UpdatedBy = &callerID

	if err := s.repo.Organizer.Update(ctx, org); err != nil {
		s.logger.Error("更新主办方失败", zap.Error(err), zap.String("organizer_guid", organizerGUID))
		return nil, err
	}
	return org, nil
}

func (s *organizerService) Delete(ctx context.Context, teamID, organizerGUID, callerID string) error {
	if _, err := s.Get(ctx, teamID, organizerGUID); err != nil {
		return err
	}
	return s.repo.Organizer.Delete(ctx, teamID, organizerGUID, callerID)
}
