package model

// ── 团队配置默认值 ──
//
// 每个键独立回退：团队未覆盖的键取这里的默认值，已覆盖的键互不影响。
// 默认值只在配置装载边界套用，算法内部永远拿到已定型的数值。

const (
	DefaultDistanceThresholdMiles = 150.0
	DefaultConsecutiveWindowDays  = 1
	DefaultTravelBufferDays       = 3
	DefaultColocationRadiusMiles  = 70.0
	DefaultPerformerCeiling       = 5

	DefaultScoringWeight = 20.0
)

// DefaultForcesSkipStatuses 默认强制跳过的工作流状态
func DefaultForcesSkipStatuses() []string { return []string{"cancelled"} }

// ConflictRules 冲突检测规则（已套用默认值的定型值）
type ConflictRules struct {
	DistanceThresholdMiles float64 `json:"distance_threshold_miles"`
	ConsecutiveWindowDays  int     `json:"consecutive_window_days"`
	TravelBufferDays       int     `json:"travel_buffer_days"`
	ColocationRadiusMiles  float64 `json:"colocation_radius_miles"`
	PerformerCeiling       int     `json:"performer_ceiling"`
}

// ScoringWeights 五维质量评分权重（不要求合计为 100）
type ScoringWeights struct {
	VenueQuality        float64 `json:"venue_quality"`
	OrganizerReputation float64 `json:"organizer_reputation"`
	PerformerLineup     float64 `json:"performer_lineup"`
	LogisticsEase       float64 `json:"logistics_ease"`
	Readiness           float64 `json:"readiness"`
}

// Sum 权重合计
func (w ScoringWeights) Sum() float64 {
	return w.VenueQuality + w.OrganizerReputation + w.PerformerLineup + w.LogisticsEase + w.Readiness
}

// TeamSettings 团队配置表 — 对应 team_settings（每团队一行）
// 所有列可空；NULL 表示该键未覆盖，装载时取默认值。
type TeamSettings struct {
	TeamID string `gorm:"type:uuid;primaryKey" json:"team_id"`

	DistanceThresholdMiles *float64 `gorm:"type:double precision" json:"distance_threshold_miles,omitempty"`
	ConsecutiveWindowDays  *int     `gorm:"type:smallint"         json:"consecutive_window_days,omitempty"`
	TravelBufferDays       *int     `gorm:"type:smallint"         json:"travel_buffer_days,omitempty"`
	ColocationRadiusMiles  *float64 `gorm:"type:double precision" json:"colocation_radius_miles,omitempty"`
	PerformerCeiling       *int     `gorm:"type:smallint"         json:"performer_ceiling,omitempty"`

	WeightVenueQuality        *float64 `gorm:"type:double precision" json:"weight_venue_quality,omitempty"`
	WeightOrganizerReputation *float64 `gorm:"type:double precision" json:"weight_organizer_reputation,omitempty"`
	WeightPerformerLineup     *float64 `gorm:"type:double precision" json:"weight_performer_lineup,omitempty"`
	WeightLogisticsEase       *float64 `gorm:"type:double precision" json:"weight_logistics_ease,omitempty"`
	WeightReadiness           *float64 `gorm:"type:double precision" json:"weight_readiness,omitempty"`

	ForcesSkipStatuses StringArray `gorm:"type:text[]" json:"forces_skip_statuses,omitempty"`
	BaseModel
}

func (TeamSettings) TableName() string { return "team_settings" }
