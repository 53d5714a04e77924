package model

import "time"

// ── 出席状态 ──

const (
	AttendancePlanned  = "planned"
	AttendanceAttended = "attended"
	AttendanceSkipped  = "skipped"
)

// ValidAttendance 出席状态是否合法
func ValidAttendance(s string) bool {
	switch s {
	case AttendancePlanned, AttendanceAttended, AttendanceSkipped:
		return true
	}
	return false
}

// ── 后勤状态 ──
//
// 三类后勤事项各自有一条状态流水线；计分只关心以下里程碑值。

const (
	TicketStatusPurchased = "purchased"
	TicketStatusReady     = "ready"

	TimeoffStatusBooked   = "booked"
	TimeoffStatusApproved = "approved"

	TravelStatusBooked = "booked"
)

// Event 活动表 — 对应 events
//
// start_time/end_time 为 "HH:MM" 文本（24 小时制、零填充），可为空；
// 三个后勤需求字段为三态（NULL=未知 / false=不需要 / true=需要）。
type Event struct {
	EventGUID  string    `gorm:"type:varchar(40);primaryKey"                json:"event_guid"`
	TeamID     string    `gorm:"type:uuid;not null;index"                   json:"team_id"`
	SeriesGUID *string   `gorm:"type:varchar(40);index"                     json:"series_guid,omitempty"`
	Title      string    `gorm:"type:varchar(200);not null"                 json:"title"`
	EventDate  time.Time `gorm:"type:date;not null;index"                   json:"event_date"`
	StartTime  *string   `gorm:"type:varchar(5)"                            json:"start_time,omitempty"`
	EndTime    *string   `gorm:"type:varchar(5)"                            json:"end_time,omitempty"`
	IsAllDay   bool      `gorm:"not null;default:false"                     json:"is_all_day"`
	IsDeadline bool      `gorm:"not null;default:false"                     json:"is_deadline"`
	Status     string    `gorm:"type:varchar(30);not null;default:'future'" json:"status"` // future | confirmed | cancelled | …
	Attendance string    `gorm:"type:varchar(10);not null;default:'planned'" json:"attendance"`

	TravelRequired  *bool   `json:"travel_required,omitempty"`
	TravelStatus    *string `gorm:"type:varchar(20)" json:"travel_status,omitempty"`
	TicketRequired  *bool   `json:"ticket_required,omitempty"`
	TicketStatus    *string `gorm:"type:varchar(20)" json:"ticket_status,omitempty"`
	TimeoffRequired *bool   `json:"timeoff_required,omitempty"`
	TimeoffStatus   *string `gorm:"type:varchar(20)" json:"timeoff_status,omitempty"`

	CategoryGUID  *string `gorm:"type:varchar(40)" json:"category_guid,omitempty"`
	LocationGUID  *string `gorm:"type:varchar(40)" json:"location_guid,omitempty"`
	OrganizerGUID *string `gorm:"type:varchar(40)" json:"organizer_guid,omitempty"`
	VersionedModel

	// 关联
	Series     *EventSeries `gorm:"foreignKey:SeriesGUID;references:SeriesGUID"       json:"series,omitempty"`
	Category   *Category    `gorm:"foreignKey:CategoryGUID;references:CategoryGUID"   json:"category,omitempty"`
	Location   *Location    `gorm:"foreignKey:LocationGUID;references:LocationGUID"   json:"location,omitempty"`
	Organizer  *Organizer   `gorm:"foreignKey:OrganizerGUID;references:OrganizerGUID" json:"organizer,omitempty"`
	Performers []Performer  `gorm:"foreignKey:EventGUID;references:EventGUID"         json:"performers,omitempty"`
}

func (Event) TableName() string { return "events" }

// EffectiveLocation 生效地点：优先自身地点，否则继承所属系列的地点
func (e *Event) EffectiveLocation() *Location {
	if e.Location != nil {
		return e.Location
	}
	if e.Series != nil {
		return e.Series.Location
	}
	return nil
}

// EffectiveCategory 生效分类：优先自身分类，否则继承所属系列的分类
func (e *Event) EffectiveCategory() *Category {
	if e.Category != nil {
		return e.Category
	}
	if e.Series != nil {
		return e.Series.Category
	}
	return nil
}

// ConfirmedPerformerCount 已确认表演者数量
func (e *Event) ConfirmedPerformerCount() int {
	count := 0
	for _, p := range e.Performers {
		if p.Status == PerformerStatusConfirmed {
			count++
		}
	}
	return count
}

// ── 表演者 ──

const (
	PerformerStatusInvited   = "invited"
	PerformerStatusConfirmed = "confirmed"
	PerformerStatusDeclined  = "declined"
)

// Performer 表演者表 — 对应 performers（活动子记录）
type Performer struct {
	PerformerGUID string `gorm:"type:varchar(40);primaryKey" json:"performer_guid"`
	EventGUID     string `gorm:"type:varchar(40);not null;index" json:"event_guid"`
	Name          string `gorm:"type:varchar(150);not null"  json:"name"`
	Status        string `gorm:"type:varchar(20);not null;default:'invited'" json:"status"` // invited | confirmed | declined
	BaseModel
}

func (Performer) TableName() string { return "performers" }
