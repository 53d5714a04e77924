package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Event        EventRepository
	EventSeries  EventSeriesRepository
	Location     LocationRepository
	Organizer    OrganizerRepository
	Category     CategoryRepository
	TeamSettings TeamSettingsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Event:        NewEventRepo(db),
		EventSeries:  NewEventSeriesRepo(db),
		Location:     NewLocationRepo(db),
		Organizer:    NewOrganizerRepo(db),
		Category:     NewCategoryRepo(db),
		TeamSettings: NewTeamSettingsRepo(db),
	}
}
