package dto

import "shuttersense/backend/internal/model"

// TeamSettingsResponse 团队配置读取响应（已套用默认值的定型值）
type TeamSettingsResponse struct {
	ConflictRules      model.ConflictRules  `json:"conflict_rules"`
	ScoringWeights     model.ScoringWeights `json:"scoring_weights"`
	ForcesSkipStatuses []string             `json:"forces_skip_statuses"`
}

// UpdateTeamSettingsRequest 团队配置更新请求
// 所有字段可选：缺省字段保持现值，显式提交的字段覆盖。
type UpdateTeamSettingsRequest struct {
	DistanceThresholdMiles *float64 `json:"distance_threshold_miles" binding:"omitempty,min=0"`
	ConsecutiveWindowDays  *int     `json:"consecutive_window_days"  binding:"omitempty,min=0"`
	TravelBufferDays       *int     `json:"travel_buffer_days"       binding:"omitempty,min=0"`
	ColocationRadiusMiles  *float64 `json:"colocation_radius_miles"  binding:"omitempty,min=0"`
	PerformerCeiling       *int     `json:"performer_ceiling"        binding:"omitempty,min=0"`

	WeightVenueQuality        *float64 `json:"weight_venue_quality"        binding:"omitempty,min=0"`
	WeightOrganizerReputation *float64 `json:"weight_organizer_reputation" binding:"omitempty,min=0"`
	WeightPerformerLineup     *float64 `json:"weight_performer_lineup"     binding:"omitempty,min=0"`
	WeightLogisticsEase       *float64 `json:"weight_logistics_ease"       binding:"omitempty,min=0"`
	WeightReadiness           *float64 `json:"weight_readiness"            binding:"omitempty,min=0"`

	ForcesSkipStatuses *[]string `json:"forces_skip_statuses"`
}
