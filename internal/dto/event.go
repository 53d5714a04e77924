package dto

// PerformerInput 表演者输入项
type PerformerInput struct {
	Name   string `json:"name"   binding:"required,max=150"`
	Status string `json:"status" binding:"omitempty,oneof=invited confirmed declined"`
}

// CreateEventRequest 创建活动请求
type CreateEventRequest struct {
	Title           string           `json:"title"      binding:"required,max=200"`
	EventDate       string           `json:"event_date" binding:"required"` // YYYY-MM-DD
	StartTime       *string          `json:"start_time" binding:"omitempty,len=5"`
	EndTime         *string          `json:"end_time"   binding:"omitempty,len=5"`
	IsAllDay        bool             `json:"is_all_day"`
	IsDeadline      bool             `json:"is_deadline"`
	Status          string           `json:"status"     binding:"omitempty,max=30"`
	SeriesGUID      *string          `json:"series_guid"`
	CategoryGUID    *string          `json:"category_guid"`
	LocationGUID    *string          `json:"location_guid"`
	OrganizerGUID   *string          `json:"organizer_guid"`
	TravelRequired  *bool            `json:"travel_required"`
	TravelStatus    *string          `json:"travel_status"`
	TicketRequired  *bool            `json:"ticket_required"`
	TicketStatus    *string          `json:"ticket_status"`
	TimeoffRequired *bool            `json:"timeoff_required"`
	TimeoffStatus   *string          `json:"timeoff_status"`
	Performers      []PerformerInput `json:"performers"`
}

// UpdateEventRequest 更新活动请求（带乐观锁版本号）
type UpdateEventRequest struct {
	Title           string  `json:"title"      binding:"required,max=200"`
	EventDate       string  `json:"event_date" binding:"required"`
	StartTime       *string `json:"start_time" binding:"omitempty,len=5"`
	EndTime         *string `json:"end_time"   binding:"omitempty,len=5"`
	IsAllDay        bool    `json:"is_all_day"`
	IsDeadline      bool    `json:"is_deadline"`
	Status          string  `json:"status"     binding:"omitempty,max=30"`
	Attendance      string  `json:"attendance" binding:"omitempty,oneof=planned attended skipped"`
	SeriesGUID      *string `json:"series_guid"`
	CategoryGUID    *string `json:"category_guid"`
	LocationGUID    *string `json:"location_guid"`
	OrganizerGUID   *string `json:"organizer_guid"`
	TravelRequired  *bool   `json:"travel_required"`
	TravelStatus    *string `json:"travel_status"`
	TicketRequired  *bool   `json:"ticket_required"`
	TicketStatus    *string `json:"ticket_status"`
	TimeoffRequired *bool   `json:"timeoff_required"`
	TimeoffStatus   *string `json:"timeoff_status"`
	Version         int     `json:"version" binding:"required,min=1"`
}

// ReplacePerformersRequest 全量替换表演者请求
type ReplacePerformersRequest struct {
	Performers []PerformerInput `json:"performers" binding:"required,dive"`
}

// ListEventsRequest 活动列表请求
type ListEventsRequest struct {
	Page     int `form:"page,default=1"      binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}

// ImportICSResponse ICS 日历导入结果
type ImportICSResponse struct {
	ImportedCount int      `json:"imported_count"`
	SkippedCount  int      `json:"skipped_count"`
	Warnings      []string `json:"warnings,omitempty"`
}
