package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"shuttersense/backend/internal/model"
	"shuttersense/backend/internal/repository"
)

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	m.events[event.EventGUID] = event
	return nil
}

func (m *mockEventRepo) BatchCreate(_ context.Context, events []model.Event) error {
	for i := range events {
		e := events[i]
		m.events[e.EventGUID] = &e
	}
	return nil
}

func (m *mockEventRepo) GetByGUID(_ context.Context, teamID, guid string) (*model.Event, error) {
	e, ok := m.events[guid]
	if !ok || e.TeamID != teamID || e.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (m *mockEventRepo) ListInRange(_ context.Context, teamID string, start, end time.Time) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		if e.TeamID != teamID || e.IsDeadline || e.DeletedAt.Valid {
			continue
		}
		if e.EventDate.Before(start) || e.EventDate.After(end) {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].EventDate.Equal(result[j].EventDate) {
			return result[i].EventDate.Before(result[j].EventDate)
		}
		return result[i].EventGUID < result[j].EventGUID
	})
	return result, nil
}

func (m *mockEventRepo) List(_ context.Context, teamID string, offset, limit int) ([]model.Event, int64, error) {
	var all []model.Event
	for _, e := range m.events {
		if e.TeamID == teamID && !e.DeletedAt.Valid {
			all = append(all, *e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].EventGUID < all[j].EventGUID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.EventGUID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, teamID, guid, deletedBy string) error {
	if e, ok := m.events[guid]; ok && e.TeamID == teamID {
		e.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		e.DeletedBy = &deletedBy
	}
	return nil
}

func (m *mockEventRepo) BatchUpdateAttendance(_ context.Context, changes []repository.AttendanceChange) error {
	for _, ch := range changes {
		e, ok := m.events[ch.EventGUID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		e.Attendance = ch.Attendance
		e.UpdatedBy = &ch.UpdatedBy
	}
	return nil
}

func (m *mockEventRepo) ReplacePerformers(_ context.Context, eventGUID string, performers []model.Performer) error {
	if e, ok := m.events[eventGUID]; ok {
		e.Performers = performers
	}
	return nil
}

// ── Mock TeamSettingsRepository ──

type mockTeamSettingsRepo struct {
	settings map[string]*model.TeamSettings
}

func newMockTeamSettingsRepo() *mockTeamSettingsRepo {
	return &mockTeamSettingsRepo{settings: make(map[string]*model.TeamSettings)}
}

func (m *mockTeamSettingsRepo) Get(_ context.Context, teamID string) (*model.TeamSettings, error) {
	return m.settings[teamID], nil
}

func (m *mockTeamSettingsRepo) Upsert(_ context.Context, s *model.TeamSettings) error {
	m.settings[s.TeamID] = s
	return nil
}

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	locations map[string]*model.Location
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[string]*model.Location)}
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	m.locations[loc.LocationGUID] = loc
	return nil
}

func (m *mockLocationRepo) GetByGUID(_ context.Context, teamID, guid string) (*model.Location, error) {
	l, ok := m.locations[guid]
	if !ok || l.TeamID != teamID || l.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (m *mockLocationRepo) List(_ context.Context, teamID string, offset, limit int) ([]model.Location, int64, error) {
	var all []model.Location
	for _, l := range m.locations {
		if l.TeamID == teamID && !l.DeletedAt.Valid {
			all = append(all, *l)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, int64(len(all)), nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	m.locations[loc.LocationGUID] = loc
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, teamID, guid, deletedBy string) error {
	if l, ok := m.locations[guid]; ok && l.TeamID == teamID {
		l.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		l.DeletedBy = &deletedBy
	}
	return nil
}

// ── Mock OrganizerRepository ──

type mockOrganizerRepo struct {
	organizers map[string]*model.Organizer
}

func newMockOrganizerRepo() *mockOrganizerRepo {
	return &mockOrganizerRepo{organizers: make(map[string]*model.Organizer)}
}

func (m *mockOrganizerRepo) Create(_ context.Context, org *model.Organizer) error {
	m.organizers[org.OrganizerGUID] = org
	return nil
}

func (m *mockOrganizerRepo) GetByGUID(_ context.Context, teamID, guid string) (*model.Organizer, error) {
	o, ok := m.organizers[guid]
	if !ok || o.TeamID != teamID || o.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (m *mockOrganizerRepo) List(_ context.Context, teamID string, offset, limit int) ([]model.Organizer, int64, error) {
	var all []model.Organizer
	for _, o := range m.organizers {
		if o.TeamID == teamID && !o.DeletedAt.Valid {
			all = append(all, *o)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, int64(len(all)), nil
}

func (m *mockOrganizerRepo) Update(_ context.Context, org *model.Organizer) error {
	m.organizers[org.OrganizerGUID] = org
	return nil
}

func (m *mockOrganizerRepo) Delete(_ context.Context, teamID, guid, deletedBy string) error {
	if o, ok := m.organizers[guid]; ok && o.TeamID == teamID {
		o.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	categories map[string]*model.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[string]*model.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, cat *model.Category) error {
	m.categories[cat.CategoryGUID] = cat
	return nil
}

func (m *mockCategoryRepo) GetByGUID(_ context.Context, teamID, guid string) (*model.Category, error) {
	c, ok := m.categories[guid]
	if !ok || c.TeamID != teamID || c.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockCategoryRepo) List(_ context.Context, teamID string) ([]model.Category, error) {
	var all []model.Category
	for _, c := range m.categories {
		if c.TeamID == teamID && !c.DeletedAt.Valid {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, cat *model.Category) error {
	m.categories[cat.CategoryGUID] = cat
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, teamID, guid, deletedBy string) error {
	if c, ok := m.categories[guid]; ok && c.TeamID == teamID {
		c.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

// ── Mock EventSeriesRepository ──

type mockSeriesRepo struct {
	series map[string]*model.EventSeries
}

func newMockSeriesRepo() *mockSeriesRepo {
	return &mockSeriesRepo{series: make(map[string]*model.EventSeries)}
}

func (m *mockSeriesRepo) Create(_ context.Context, s *model.EventSeries) error {
	m.series[s.SeriesGUID] = s
	return nil
}

func (m *mockSeriesRepo) GetByGUID(_ context.Context, teamID, guid string) (*model.EventSeries, error) {
	s, ok := m.series[guid]
	if !ok || s.TeamID != teamID || s.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (m *mockSeriesRepo) List(_ context.Context, teamID string) ([]model.EventSeries, error) {
	var all []model.EventSeries
	for _, s := range m.series {
		if s.TeamID == teamID && !s.DeletedAt.Valid {
			all = append(all, *s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (m *mockSeriesRepo) Update(_ context.Context, s *model.EventSeries) error {
	m.series[s.SeriesGUID] = s
	return nil
}

func (m *mockSeriesRepo) Delete(_ context.Context, teamID, guid, deletedBy string) error {
	if s, ok := m.series[guid]; ok && s.TeamID == teamID {
		s.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, userID string) (*model.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByTeam(_ context.Context, teamID string) ([]model.User, error) {
	var all []model.User
	for _, u := range m.users {
		if u.TeamID == teamID {
			all = append(all, *u)
		}
	}
	return all, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// newMockRepository 组装全 Mock 的 Repository 聚合
func newMockRepository() (*repository.Repository, *mockEventRepo, *mockTeamSettingsRepo) {
	eventRepo := newMockEventRepo()
	settingsRepo := newMockTeamSettingsRepo()
	return &repository.Repository{
		User:         newMockUserRepo(),
		Event:        eventRepo,
		EventSeries:  newMockSeriesRepo(),
		Location:     newMockLocationRepo(),
		Organizer:    newMockOrganizerRepo(),
		Category:     newMockCategoryRepo(),
		TeamSettings: settingsRepo,
	}, eventRepo, settingsRepo
}
