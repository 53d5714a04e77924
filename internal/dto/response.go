package dto

// Pagination 通用分页信息
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// CategoryBrief 分类摘要（活动展示用）
type CategoryBrief struct {
	CategoryGUID string `json:"category_guid"`
	Name         string `json:"name"`
	Color        string `json:"color,omitempty"`
}

// LocationBrief 地点摘要（活动展示用）
type LocationBrief struct {
	LocationGUID string   `json:"location_guid"`
	Name         string   `json:"name"`
	City         string   `json:"city,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
}

// OrganizerBrief 主办方摘要（活动展示用）
type OrganizerBrief struct {
	OrganizerGUID string   `json:"organizer_guid"`
	Name          string   `json:"name"`
	Rating        *float64 `json:"rating,omitempty"`
}
