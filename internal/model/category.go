package model

// Category 活动分类表 — 对应 categories
type Category struct {
	CategoryGUID string `gorm:"type:varchar(40);primaryKey" json:"category_guid"`
	TeamID       string `gorm:"type:uuid;not null;index"    json:"team_id"`
	Name         string `gorm:"type:varchar(100);not null"  json:"name"`
	Color        string `gorm:"type:varchar(7)"             json:"color,omitempty"` // #RRGGBB
	SoftDeleteModel
}

func (Category) TableName() string { return "categories" }
