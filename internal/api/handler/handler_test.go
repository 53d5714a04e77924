package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"shuttersense/backend/internal/dto"
	"shuttersense/backend/internal/model"
	"shuttersense/backend/internal/service"
	"shuttersense/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock ConflictService ──

type mockConflictService struct {
	detectResult  *dto.DetectConflictsResponse
	detectErr     error
	scoresResult  *dto.EventScores
	scoresErr     error
	resolveResult *dto.ResolveConflictsResponse
	resolveErr    error
}

func (m *mockConflictService) DetectConflicts(_ context.Context, _, _, _ string) (*dto.DetectConflictsResponse, error) {
	return m.detectResult, m.detectErr
}
func (m *mockConflictService) GetEventScores(_ context.Context, _, _ string) (*dto.EventScores, error) {
	return m.scoresResult, m.scoresErr
}
func (m *mockConflictService) ResolveConflicts(_ context.Context, _, _ string, _ *dto.ResolveConflictsRequest) (*dto.ResolveConflictsResponse, error) {
	return m.resolveResult, m.resolveErr
}

// ── Mock EventService ──

type mockEventService struct {
	createResult  *model.Event
	createErr     error
	getResult     *model.Event
	getErr        error
	listResult    []model.Event
	listPag       *dto.Pagination
	listErr       error
	updateResult  *model.Event
	updateErr     error
	deleteErr     error
	replaceResult *model.Event
	replaceErr    error
}

func (m *mockEventService) Create(_ context.Context, _, _ string, _ *dto.CreateEventRequest) (*model.Event, error) {
	return m.createResult, m.createErr
}
func (m *mockEventService) Get(_ context.Context, _, _ string) (*model.Event, error) {
	return m.getResult, m.getErr
}
func (m *mockEventService) List(_ context.Context, _ string, _ *dto.ListEventsRequest) ([]model.Event, *dto.Pagination, error) {
	return m.listResult, m.listPag, m.listErr
}
func (m *mockEventService) Update(_ context.Context, _, _, _ string, _ *dto.UpdateEventRequest) (*model.Event, error) {
	return m.updateResult, m.updateErr
}
func (m *mockEventService) Delete(_ context.Context, _, _, _ string) error {
	return m.deleteErr
}
func (m *mockEventService) ReplacePerformers(_ context.Context, _, _, _ string, _ []dto.PerformerInput) (*model.Event, error) {
	return m.replaceResult, m.replaceErr
}

// ── Mock ImportService ──

type mockImportService struct {
	result *dto.ImportICSResponse
	err    error
}

func (m *mockImportService) ImportICS(_ context.Context, _, _ string, _ io.Reader) (*dto.ImportICSResponse, error) {
	return m.result, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportConflictReport(_ context.Context, _, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "usr-test-1")
	c.Set("team_id", "team-test-1")
	c.Set("role", "admin")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// ConflictHandler Tests
// ═══════════════════════════════════════════════════════════

func TestConflictHandler_Detect_Success(t *testing.T) {
	mock := &mockConflictService{
		detectResult: &dto.DetectConflictsResponse{
			Groups:       []dto.ConflictGroupDTO{},
			ScoredEvents: []dto.ScoredEvent{},
		},
	}
	h := NewConflictHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/conflicts?start_date=2026-03-01&end_date=2026-03-31", nil)

	r := gin.New()
	r.GET("/conflicts", func(c *gin.Context) {
		setAuth(c)
		h.DetectConflicts(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestConflictHandler_Detect_MissingParams(t *testing.T) {
	mock := &mockConflictService{}
	h := NewConflictHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/conflicts", nil)

	r := gin.New()
	r.GET("/conflicts", func(c *gin.Context) {
		setAuth(c)
		h.DetectConflicts(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestConflictHandler_Detect_InvalidRange(t *testing.T) {
	mock := &mockConflictService{detectErr: service.ErrInvalidDateRange}
	h := NewConflictHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/conflicts?start_date=2026-03-31&end_date=2026-03-01", nil)

	r := gin.New()
	r.GET("/conflicts", func(c *gin.Context) {
		setAuth(c)
		h.DetectConflicts(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 30001 {
		t.Errorf("expected error code 30001, got %d", resp.Code)
	}
}

func TestConflictHandler_Detect_Unauthenticated(t *testing.T) {
	mock := &mockConflictService{}
	h := NewConflictHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/conflicts?start_date=2026-03-01&end_date=2026-03-31", nil)

	r := gin.New()
	r.GET("/conflicts", h.DetectConflicts)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestConflictHandler_GetScores_Success(t *testing.T) {
	mock := &mockConflictService{
		scoresResult: &dto.EventScores{
			VenueQuality:        80,
			OrganizerReputation: 50,
			PerformerLineup:     100,
			LogisticsEase:       100,
			Readiness:           100,
			Composite:           86.0,
		},
	}
	h := NewConflictHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/evt-1/scores", nil)

	r := gin.New()
	r.GET("/events/:guid/scores", func(c *gin.Context) {
		setAuth(c)
		h.GetEventScores(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestConflictHandler_GetScores_NotFound(t *testing.T) {
	mock := &mockConflictService{scoresErr: service.ErrEventNotFound}
	h := NewConflictHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/evt-missing/scores", nil)

	r := gin.New()
	r.GET("/events/:guid/scores", func(c *gin.Context) {
		setAuth(c)
		h.GetEventScores(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 30002 {
		t.Errorf("expected error code 30002, got %d", resp.Code)
	}
}

func TestConflictHandler_Resolve_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NoDecisions", service.ErrNoDecisions, 400, 30003},
		{"Incomplete", service.ErrDecisionIncomplete, 400, 30004},
		{"InvalidAttendance", service.ErrInvalidAttendance, 400, 30005},
		{"EventNotFound", service.ErrEventNotFound, 404, 30002},
		{"AttendanceLocked", service.ErrAttendanceLocked, 409, 30006},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockConflictService{resolveErr: tt.err}
			h := NewConflictHandler(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/conflicts/resolve", jsonBody(dto.ResolveConflictsRequest{
				GroupID: "cg_1",
				Decisions: []dto.ResolutionDecision{
					{EventGUID: "evt-1", Attendance: "skipped"},
				},
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/conflicts/resolve", func(c *gin.Context) {
				setAuth(c)
				h.ResolveConflicts(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestConflictHandler_Resolve_Success(t *testing.T) {
	mock := &mockConflictService{
		resolveResult: &dto.ResolveConflictsResponse{Success: true, UpdatedCount: 2},
	}
	h := NewConflictHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/conflicts/resolve", jsonBody(dto.ResolveConflictsRequest{
		GroupID: "cg_1",
		Decisions: []dto.ResolutionDecision{
			{EventGUID: "evt-1", Attendance: "skipped"},
			{EventGUID: "evt-2", Attendance: "planned"},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/conflicts/resolve", func(c *gin.Context) {
		setAuth(c)
		h.ResolveConflicts(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// EventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEventHandler_Create_BadJSON(t *testing.T) {
	h := NewEventHandler(&mockEventService{}, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/events", bytes.NewReader([]byte("bad json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/events", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestEventHandler_Create_Success(t *testing.T) {
	mock := &mockEventService{
		createResult: &model.Event{EventGUID: "evt_xxx", Title: "影展布展"},
	}
	h := NewEventHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/events", jsonBody(dto.CreateEventRequest{
		Title:     "影展布展",
		EventDate: "2026-04-01",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/events", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestEventHandler_Update_VersionConflict(t *testing.T) {
	mock := &mockEventService{updateErr: service.ErrVersionConflict}
	h := NewEventHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/events/evt-1", jsonBody(dto.UpdateEventRequest{
		Title:     "影展布展",
		EventDate: "2026-04-01",
		Version:   3,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/events/:guid", func(c *gin.Context) {
		setAuth(c)
		h.Update(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 31004 {
		t.Errorf("expected error code 31004, got %d", resp.Code)
	}
}

func TestEventHandler_Get_NotFound(t *testing.T) {
	mock := &mockEventService{getErr: service.ErrEventNotFound}
	h := NewEventHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/events/evt-missing", nil)

	r := gin.New()
	r.GET("/events/:guid", func(c *gin.Context) {
		setAuth(c)
		h.Get(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "conflict-report_20260301_20260331.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/conflicts?start_date=2026-03-01&end_date=2026-03-31", nil)

	r := gin.New()
	r.GET("/export/conflicts", func(c *gin.Context) {
		setAuth(c)
		h.ExportConflictReport(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_MissingParams(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/conflicts", nil)

	r := gin.New()
	r.GET("/export/conflicts", func(c *gin.Context) {
		setAuth(c)
		h.ExportConflictReport(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
