package handler

import "shuttersense/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Event     *EventHandler
	Conflict  *ConflictHandler
	Location  *LocationHandler
	Organizer *OrganizerHandler
	Category  *CategoryHandler
	Settings  *SettingsHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Event:     NewEventHandler(svc.Event, svc.Import),
		Conflict:  NewConflictHandler(svc.Conflict),
		Location:  NewLocationHandler(svc.Location),
		Organizer: NewOrganizerHandler(svc.Organizer),
		Category:  NewCategoryHandler(svc.Category),
		Settings:  NewSettingsHandler(svc.TeamConfig),
		Export:    NewExportHandler(svc.Export),
	}
}
