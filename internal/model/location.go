package model

// Location 活动地点表 — 对应 locations
// 坐标与评分均可为空：缺坐标的地点不参与距离类冲突检测，
// 缺评分的地点在场地质量维度按中位值计分。
type Location struct {
	LocationGUID string   `gorm:"type:varchar(40);primaryKey"       json:"location_guid"`
	TeamID       string   `gorm:"type:uuid;not null;index"          json:"team_id"`
	Name         string   `gorm:"type:varchar(150);not null"        json:"name"`
	Address      string   `gorm:"type:varchar(300)"                 json:"address,omitempty"`
	City         string   `gorm:"type:varchar(100)"                 json:"city,omitempty"`
	Latitude     *float64 `gorm:"type:double precision"             json:"latitude,omitempty"`
	Longitude    *float64 `gorm:"type:double precision"             json:"longitude,omitempty"`
	Rating       *float64 `gorm:"type:numeric(2,1)"                 json:"rating,omitempty"` // 1.0–5.0
	IsActive     bool     `gorm:"not null;default:true"             json:"is_active"`
	SoftDeleteModel
}

func (Location) TableName() string { return "locations" }

// HasCoordinates 坐标是否完整
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}
