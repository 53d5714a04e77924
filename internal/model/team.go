package model

// Team 团队（租户）表 — 对应 teams
// 所有业务数据均以 team_id 隔离，跨团队访问等同于不存在。
type Team struct {
	TeamID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	Name   string `gorm:"type:varchar(100);not null"                     json:"name"`
	SoftDeleteModel
}

func (Team) TableName() string { return "teams" }
