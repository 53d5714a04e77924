package service

import (
	"go.uber.org/zap"

	"shuttersense/backend/internal/repository"
	"shuttersense/backend/pkg/jwt"
	"shuttersense/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Event      EventService
	Conflict   ConflictService
	TeamConfig TeamConfigService
	Location   LocationService
	Organizer  OrganizerService
	Category   CategoryService
	Import     ImportService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	teamConfig := NewTeamConfigService(repo, logger)
	conflict := NewConflictService(repo, teamConfig, logger)

	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, rdb, logger),
		Event:      NewEventService(repo, logger),
		Conflict:   conflict,
		TeamConfig: teamConfig,
		Location:   NewLocationService(repo, logger),
		Organizer:  NewOrganizerService(repo, logger),
		Category:   NewCategoryService(repo, logger),
		Import:     NewImportService(repo, logger),
		Export:     NewExportService(conflict, logger),
	}
}
