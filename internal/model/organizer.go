package model

// Organizer 主办方表 — 对应 organizers
type Organizer struct {
	OrganizerGUID string   `gorm:"type:varchar(40);primaryKey" json:"organizer_guid"`
	TeamID        string   `gorm:"type:uuid;not null;index"    json:"team_id"`
	Name          string   `gorm:"type:varchar(150);not null"  json:"name"`
	Email         string   `gorm:"type:varchar(255)"           json:"email,omitempty"`
	Website       string   `gorm:"type:varchar(255)"           json:"website,omitempty"`
	Rating        *float64 `gorm:"type:numeric(2,1)"           json:"rating,omitempty"` // 1.0–5.0
	SoftDeleteModel
}

func (Organizer) TableName() string { return "organizers" }
