package service

import (
	"context"

	"go.uber.org/zap"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/model"
	"shuttersense/backend/internal/repository"
)

// TeamConfigService 团队配置业务接口
// 读取口径：每个键独立回退默认值，默认值只在这里套用，
// 算法层永远拿到已定型的 ConflictRules / ScoringWeights。
type TeamConfigService interface {
	GetConflictRules(ctx context.Context, teamID string) (model.ConflictRules, error)
	GetScoringWeights(ctx context.Context, teamID string) (model.ScoringWeights, error)
	GetForcesSkipStatuses(ctx context.Context, teamID string) ([]string, error)
	GetSettings(ctx context.Context, teamID string) (*dto.TeamSettingsResponse, error)
	UpdateSettings(ctx context.Context, teamID, callerID string, req *dto.UpdateTeamSettingsRequest) (*dto.TeamSettingsResponse, error)
}

type teamConfigService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamConfigService 创建 TeamConfigService 实例
func NewTeamConfigService(repo *repository.Repository, logger *zap.Logger) TeamConfigService {
	return &teamConfigService{repo: repo, logger: logger}
}

func (s *teamConfigService) GetConflictRules(ctx context.Context, teamID string) (model.ConflictRules, error) {
	settings, err := s.repo.TeamSettings.Get(ctx, teamID)
	if err != nil {
		s.logger.Error("读取团队配置失败", zap.Error(err), zap.String("team_id", teamID))
		return model.ConflictRules{}, err
	}
	return resolveConflictRules(settings), nil
}

func (s *teamConfigService) GetScoringWeights(ctx context.Context, teamID string) (model.ScoringWeights, error) {
	settings, err := s.repo.TeamSettings.Get(ctx, teamID)
	if err != nil {
		s.logger.Error("读取团队配置失败", zap.Error(err), zap.String("team_id", teamID))
		return model.ScoringWeights{}, err
	}
	return resolveScoringWeights(settings), nil
}

func (s *teamConfigService) GetForcesSkipStatuses(ctx context.Context, teamID string) ([]string, error) {
	settings, err := s.repo.TeamSettings.Get(ctx, teamID)
	if err != nil {
		s.logger.Error("读取团队配置失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}
	return resolveForcesSkipStatuses(settings), nil
}

func (s *teamConfigService) GetSettings(ctx context.Context, teamID string) (*dto.TeamSettingsResponse, error) {
	settings, err := s.repo.TeamSettings.Get(ctx, teamID)
	if err != nil {
		s.logger.Error("读取团队配置失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}
	return &dto.TeamSettingsResponse{
		ConflictRules:      resolveConflictRules(settings),
		ScoringWeights:     resolveScoringWeights(settings),
		ForcesSkipStatuses: resolveForcesSkipStatuses(settings),
	}, nil
}

func (s *teamConfigService) UpdateSettings(ctx context.Context, teamID, callerID string, req *dto.UpdateTeamSettingsRequest) (*dto.TeamSettingsResponse, error) {
	settings, err := s.repo.TeamSettings.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &model.TeamSettings{TeamID: teamID}
		settings.CreatedBy = &callerID
	}

	// 只覆盖显式提交的键
	if req.DistanceThresholdMiles != nil {
		settings.DistanceThresholdMiles = req.DistanceThresholdMiles
	}
	if req.ConsecutiveWindowDays != nil {
		settings.ConsecutiveWindowDays = req.ConsecutiveWindowDays
	}
	if req.TravelBufferDays != nil {
		settings.TravelBufferDays = req.TravelBufferDays
	}
	if req.ColocationRadiusMiles != nil {
		settings.ColocationRadiusMiles = req.ColocationRadiusMiles
	}
	if req.PerformerCeiling != nil {
		settings.PerformerCeiling = req.PerformerCeiling
	}
	if req.WeightVenueQuality != nil {
		settings.WeightVenueQuality = req.WeightVenueQuality
	}
	if req.WeightOrganizerReputation != nil {
		settings.WeightOrganizerReputation = req.WeightOrganizerReputation
	}
	if req.WeightPerformerLineup != nil {
		settings.WeightPerformerLineup = req.WeightPerformerLineup
	}
	if req.WeightLogisticsEase != nil {
		settings.WeightLogisticsEase = req.WeightLogisticsEase
	}
	if req.WeightReadiness != nil {
		settings.WeightReadiness = req.WeightReadiness
	}
	if req.ForcesSkipStatuses != nil {
		settings.ForcesSkipStatuses = model.StringArray(*req.ForcesSkipStatuses)
	}
	settings.UpdatedBy = &callerID

	if err := s.repo.TeamSettings.Upsert(ctx, settings); err != nil {
		s.logger.Error("更新团队配置失败", zap.Error(err), zap.String("team_id", teamID))
		return nil, err
	}

	s.logger.Info("团队配置已更新",
		zap.String("team_id", teamID),
		zap.String("caller_id", callerID))

	return &dto.TeamSettingsResponse{
		ConflictRules:      resolveConflictRules(settings),
		ScoringWeights:     resolveScoringWeights(settings),
		ForcesSkipStatuses: resolveForcesSkipStatuses(settings),
	}, nil
}

// ── 默认值装载 ──

func resolveConflictRules(s *model.TeamSettings) model.ConflictRules {
	rules := model.ConflictRules{
		DistanceThresholdMiles: model.DefaultDistanceThresholdMiles,
		ConsecutiveWindowDays:  model.DefaultConsecutiveWindowDays,
		TravelBufferDays:       model.DefaultTravelBufferDays,
		ColocationRadiusMiles:  model.DefaultColocationRadiusMiles,
		PerformerCeiling:       model.DefaultPerformerCeiling,
	}
	if s == nil {
		return rules
	}
	if s.DistanceThresholdMiles != nil {
		rules.DistanceThresholdMiles = *s.DistanceThresholdMiles
	}
	if s.ConsecutiveWindowDays != nil {
		rules.ConsecutiveWindowDays = *s.ConsecutiveWindowDays
	}
	if s.TravelBufferDays != nil {
		rules.TravelBufferDays = *s.TravelBufferDays
	}
	if s.ColocationRadiusMiles != nil {
		rules.ColocationRadiusMiles = *s.ColocationRadiusMiles
	}
	if s.PerformerCeiling != nil {
		rules.PerformerCeiling = *s.PerformerCeiling
	}
	return rules
}

func resolveScoringWeights(s *model.TeamSettings) model.ScoringWeights {
	weights := model.ScoringWeights{
		VenueQuality:        model.DefaultScoringWeight,
		OrganizerReputation: model.DefaultScoringWeight,
		PerformerLineup:     model.DefaultScoringWeight,
		LogisticsEase:       model.DefaultScoringWeight,
		Readiness:           model.DefaultScoringWeight,
	}
	if s == nil {
		return weights
	}
	if s.WeightVenueQuality != nil {
		weights.VenueQuality = *s.WeightVenueQuality
	}
	if s.WeightOrganizerReputation != nil {
		weights.OrganizerReputation = *s.WeightOrganizerReputation
	}
	if s.WeightPerformerLineup != nil {
		weights.PerformerLineup = *s.WeightPerformerLineup
	}
	if s.WeightLogisticsEase != nil {
		weights.LogisticsEase = *s.WeightLogisticsEase
	}
	if s.WeightReadiness != nil {
		weights.Readiness = *s.WeightReadiness
	}
	return weights
}

func resolveForcesSkipStatuses(s *model.TeamSettings) []string {
	if s == nil || s.ForcesSkipStatuses == nil {
		return model.DefaultForcesSkipStatuses()
	}
	return []string(s.ForcesSkipStatuses)
}
