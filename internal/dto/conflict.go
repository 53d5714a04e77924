package dto

// DetectConflictsRequest 冲突检测请求（日期为 YYYY-MM-DD）
type DetectConflictsRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date"   binding:"required"`
}

// EventScores 单活动五维评分与加权综合分
type EventScores struct {
	VenueQuality        float64 `json:"venue_quality"`
	OrganizerReputation float64 `json:"organizer_reputation"`
	PerformerLineup     float64 `json:"performer_lineup"`
	LogisticsEase       float64 `json:"logistics_ease"`
	Readiness           float64 `json:"readiness"`
	Composite           float64 `json:"composite"`
}

// ScoredEvent 带评分的活动快照（冲突检测响应成员）
type ScoredEvent struct {
	EventGUID  string          `json:"event_guid"`
	Title      string          `json:"title"`
	EventDate  string          `json:"event_date"`
	StartTime  *string         `json:"start_time,omitempty"`
	EndTime    *string         `json:"end_time,omitempty"`
	IsAllDay   bool            `json:"is_all_day"`
	Status     string          `json:"status"`
	Attendance string          `json:"attendance"`
	ForcesSkip bool            `json:"forces_skip"`
	Category   *CategoryBrief  `json:"category,omitempty"`
	Location   *LocationBrief  `json:"location,omitempty"`
	Organizer  *OrganizerBrief `json:"organizer,omitempty"`
	Scores     EventScores     `json:"scores"`
}

// ConflictEdgeDTO 冲突边（event_a_guid < event_b_guid）
type ConflictEdgeDTO struct {
	EventAGUID   string `json:"event_a_guid"`
	EventBGUID   string `json:"event_b_guid"`
	ConflictType string `json:"conflict_type"` // time_overlap | distance | travel_buffer
	Detail       string `json:"detail"`
}

// ConflictGroupDTO 冲突组（瞬态，检测时重算）
type ConflictGroupDTO struct {
	GroupID string            `json:"group_id"` // cg_1, cg_2, ...
	Status  string            `json:"status"`   // unresolved | partially_resolved | resolved
	Events  []ScoredEvent     `json:"events"`
	Edges   []ConflictEdgeDTO `json:"edges"`
}

// ConflictSummary 检测结果汇总
type ConflictSummary struct {
	TotalGroups       int `json:"total_groups"`
	Unresolved        int `json:"unresolved"`
	PartiallyResolved int `json:"partially_resolved"`
	Resolved          int `json:"resolved"`
}

// DetectConflictsResponse 冲突检测响应
type DetectConflictsResponse struct {
	Groups       []ConflictGroupDTO `json:"groups"`
	ScoredEvents []ScoredEvent      `json:"scored_events"`
	Summary      ConflictSummary    `json:"summary"`
}

// ResolutionDecision 单条出席决策
type ResolutionDecision struct {
	EventGUID  string `json:"event_guid"`
	Attendance string `json:"attendance"`
}

// ResolveConflictsRequest 批量出席决策请求；GroupID 仅用于日志
type ResolveConflictsRequest struct {
	GroupID   string               `json:"group_id,omitempty"`
	Decisions []ResolutionDecision `json:"decisions"`
}

// ResolveConflictsResponse 批量出席决策响应
// UpdatedCount 只统计实际发生变化的活动
type ResolveConflictsResponse struct {
	Success      bool `json:"success"`
	UpdatedCount int  `json:"updated_count"`
}
