package model

// EventSeries 活动系列表 — 对应 event_series
// 系列为子活动提供地点/分类回退值（见 Event.EffectiveLocation）。
type EventSeries struct {
	SeriesGUID   string  `gorm:"type:varchar(40);primaryKey" json:"series_guid"`
	TeamID       string  `gorm:"type:uuid;not null;index"    json:"team_id"`
	Name         string  `gorm:"type:varchar(150);not null"  json:"name"`
	CategoryGUID *string `gorm:"type:varchar(40)"            json:"category_guid,omitempty"`
	LocationGUID *string `gorm:"type:varchar(40)"            json:"location_guid,omitempty"`
	SoftDeleteModel

	// 关联
	Category *Category `gorm:"foreignKey:CategoryGUID;references:CategoryGUID" json:"category,omitempty"`
	Location *Location `gorm:"foreignKey:LocationGUID;references:LocationGUID" json:"location,omitempty"`
}

func (EventSeries) TableName() string { return "event_series" }
