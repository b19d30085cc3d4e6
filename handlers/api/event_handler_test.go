package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/clock"
	"takvim.link/repositories"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func init() {
	configslog.SetLogger(zap.NewNop())
}

type testServer struct {
	app   *fiber.App
	clock *clock.Manual
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	clk := clock.NewManual(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	directory := repositories.NewDirectoryMemoryRepository(models.DefaultTeams(), models.DefaultMembers())
	eventService := services.NewEventService(repositories.NewEventMemoryRepository(clk), directory, services.WithClock(clk))
	return &testServer{app: newApp(eventService, services.NewDirectoryService(directory)), clock: clk}
}

// newApp routes paketine bağımlı olmadan aynı rota düzenini kurar.
func newApp(eventService services.IEventService, directoryService services.IDirectoryService) *fiber.App {
	app := fiber.New()
	events := NewEventHandler(eventService)
	directory := NewDirectoryHandler(directoryService)

	app.Get("/", Root)
	app.Get("/health", Health)
	api := app.Group("/api")
	api.Get("/events", events.ListEvents)
	api.Post("/events", events.CreateEvent)
	api.Get("/events/deleted", events.ListDeletedEvents)
	api.Get("/events/export.ics", events.ExportICS)
	api.Get("/events/:id", events.GetEvent)
	api.Put("/events/:id", events.UpdateEvent)
	api.Delete("/events/:id", events.DeleteEvent)
	api.Post("/events/:id/recover", events.RecoverEvent)
	api.Get("/teams", directory.ListTeams)
	api.Get("/users", directory.ListUsers)
	app.Use(NotFound)
	return app
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("body okunamadı: %v", err)
	}
	return resp.StatusCode, data
}

const standupBody = `{
	"title": "Standup",
	"description": "daily sync",
	"startDate": "2024-01-01T09:00Z",
	"endDate": "2024-01-01T09:15Z",
	"timezone": "Europe/Istanbul",
	"guests": [{"type": "user", "id": "user1"}, {"type": "external", "name": "Ada", "email": "ada@example.com"}]
}`

func (s *testServer) createEvent(t *testing.T, body string) models.Event {
	t.Helper()
	status, data := s.do(t, http.MethodPost, "/api/events", body)
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d, body = %s", status, data)
	}
	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("create yanıtı çözümlenemedi: %v", err)
	}
	return event
}

func decodeError(t *testing.T, data []byte) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("hata yanıtı çözümlenemedi: %v (%s)", err, data)
	}
	return resp
}

func TestCreateAndGetEvent(t *testing.T) {
	s := newTestServer(t)
	created := s.createEvent(t, standupBody)

	if created.ID == "" || created.IsDeleted {
		t.Fatalf("unexpected created event: %+v", created)
	}
	if created.Privacy != models.PrivacyTeam || !created.Notifications.Email {
		t.Errorf("defaults not applied: privacy=%q notifications=%+v", created.Privacy, created.Notifications)
	}

	status, data := s.do(t, http.MethodGet, "/api/events/"+created.ID, "")
	if status != fiber.StatusOK {
		t.Fatalf("get status = %d, body = %s", status, data)
	}
	var got models.Event
	_ = json.Unmarshal(data, &got)
	if got.Title != "Standup" || len(got.Guests) != 2 {
		t.Errorf("get returned %+v", got)
	}
}

func TestCreateEventValidation(t *testing.T) {
	s := newTestServer(t)
	status, data := s.do(t, http.MethodPost, "/api/events", `{"title":"  ","startDate":"2024-01-01T09:00Z"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	resp := decodeError(t, data)
	if resp.Success || resp.Message != "Validation error" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	fields := map[string]bool{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"title", "description", "endDate", "timezone"} {
		if !fields[want] {
			t.Errorf("missing field error for %q in %+v", want, resp.Errors)
		}
	}
}

func TestCreateEventMalformedBody(t *testing.T) {
	s := newTestServer(t)
	status, data := s.do(t, http.MethodPost, "/api/events", `{"title": 42`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (%s)", status, data)
	}
	if resp := decodeError(t, data); len(resp.Errors) != 1 || resp.Errors[0].Field != "body" {
		t.Errorf("unexpected errors: %+v", resp.Errors)
	}
}

func TestListEventsEmptyIsArray(t *testing.T) {
	s := newTestServer(t)
	status, data := s.do(t, http.MethodGet, "/api/events", "")
	if status != fiber.StatusOK || strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("status = %d, body = %s", status, data)
	}
}

func TestGetUnknownEvent(t *testing.T) {
	s := newTestServer(t)
	status, data := s.do(t, http.MethodGet, "/api/events/missing", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if resp := decodeError(t, data); resp.Message != services.ErrEventNotFound.Error() {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestUpdateEventReportsChanges(t *testing.T) {
	s := newTestServer(t)
	created := s.createEvent(t, standupBody)

	status, data := s.do(t, http.MethodPut, "/api/events/"+created.ID, `{"title":"Retro"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, body = %s", status, data)
	}
	var result services.UpdateResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Event.Title != "Retro" || result.IsRecurringException {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(result.Changes) != 1 || result.Changes[0].Field != "title" {
		t.Errorf("changes = %+v", result.Changes)
	}
}

func TestUpdateSingleOccurrenceForksException(t *testing.T) {
	s := newTestServer(t)
	series := s.createEvent(t, `{
		"title": "Weekly",
		"description": "sync",
		"startDate": "2024-01-01T09:00:00Z",
		"endDate": "2024-01-01T10:00:00Z",
		"timezone": "UTC",
		"recurring": {"enabled": true, "frequency": "weekly", "interval": 1}
	}`)

	status, data := s.do(t, http.MethodPut, "/api/events/"+series.ID,
		`{"title":"Moved","updateType":"single","instanceDate":"2024-01-08T09:00:00Z"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, body = %s", status, data)
	}
	var result services.UpdateResult
	_ = json.Unmarshal(data, &result)
	if !result.IsRecurringException || result.Event.ParentEventID != series.ID {
		t.Fatalf("expected exception of %s, got %+v", series.ID, result.Event)
	}

	_, data = s.do(t, http.MethodGet, "/api/events/"+series.ID, "")
	var unchanged models.Event
	_ = json.Unmarshal(data, &unchanged)
	if unchanged.Title != "Weekly" {
		t.Errorf("series title changed to %q", unchanged.Title)
	}

	status, _ = s.do(t, http.MethodPut, "/api/events/"+series.ID,
		`{"title":"Nope","updateType":"single","instanceDate":"2024-01-09T09:00:00Z"}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("non-occurrence instanceDate status = %d, want 400", status)
	}
}

func TestDeleteRecoverLifecycle(t *testing.T) {
	s := newTestServer(t)
	created := s.createEvent(t, standupBody)
	path := "/api/events/" + created.ID

	status, data := s.do(t, http.MethodDelete, path, "")
	if status != fiber.StatusOK {
		t.Fatalf("delete status = %d, body = %s", status, data)
	}
	var confirmation struct {
		Success bool         `json:"success"`
		Event   models.Event `json:"event"`
	}
	_ = json.Unmarshal(data, &confirmation)
	if !confirmation.Success || !confirmation.Event.IsDeleted {
		t.Errorf("unexpected delete confirmation: %s", data)
	}

	if status, _ = s.do(t, http.MethodDelete, path, ""); status != fiber.StatusBadRequest {
		t.Errorf("second delete status = %d, want 400", status)
	}
	if status, _ = s.do(t, http.MethodGet, path, ""); status != fiber.StatusNotFound {
		t.Errorf("get deleted status = %d, want 404", status)
	}
	if status, _ = s.do(t, http.MethodPut, path, `{"title":"x"}`); status != fiber.StatusNotFound {
		t.Errorf("update deleted status = %d, want 404", status)
	}

	_, data = s.do(t, http.MethodGet, "/api/events/deleted", "")
	var deleted []models.Event
	_ = json.Unmarshal(data, &deleted)
	if len(deleted) != 1 || deleted[0].ID != created.ID {
		t.Fatalf("deleted list = %s", data)
	}

	s.clock.Advance(23 * time.Hour)
	status, data = s.do(t, http.MethodPost, path+"/recover", "")
	if status != fiber.StatusOK {
		t.Fatalf("recover status = %d, body = %s", status, data)
	}
	if status, _ = s.do(t, http.MethodPost, path+"/recover", ""); status != fiber.StatusBadRequest {
		t.Errorf("recover active status = %d, want 400", status)
	}
}

func TestRecoverAfterRetentionWindow(t *testing.T) {
	s := newTestServer(t)
	created := s.createEvent(t, standupBody)
	s.do(t, http.MethodDelete, "/api/events/"+created.ID, "")

	s.clock.Advance(models.RetentionWindow + time.Minute)
	status, data := s.do(t, http.MethodPost, "/api/events/"+created.ID+"/recover", "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if resp := decodeError(t, data); resp.Message != services.ErrRetentionExpired.Error() {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestExportICS(t *testing.T) {
	s := newTestServer(t)
	s.createEvent(t, standupBody)

	req := httptest.NewRequest(http.MethodGet, "/api/events/export.ics", nil)
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "BEGIN:VCALENDAR") || !strings.Contains(string(body), "SUMMARY:Standup") {
		t.Errorf("unexpected calendar body:\n%s", body)
	}
}

func TestDirectoryAndSystemRoutes(t *testing.T) {
	s := newTestServer(t)

	_, data := s.do(t, http.MethodGet, "/api/teams", "")
	var teams []models.Team
	_ = json.Unmarshal(data, &teams)
	if len(teams) != len(models.DefaultTeams()) {
		t.Errorf("teams = %s", data)
	}

	_, data = s.do(t, http.MethodGet, "/api/users", "")
	var users []models.Member
	_ = json.Unmarshal(data, &users)
	if len(users) != len(models.DefaultMembers()) {
		t.Errorf("users = %s", data)
	}

	status, data := s.do(t, http.MethodGet, "/health", "")
	if status != fiber.StatusOK || !strings.Contains(string(data), "Server is healthy") {
		t.Errorf("health = %d %s", status, data)
	}

	status, data = s.do(t, http.MethodGet, "/nope", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("unknown route status = %d", status)
	}
	if resp := decodeError(t, data); resp.Message != "Route not found" {
		t.Errorf("message = %q", resp.Message)
	}
}

type brokenService struct {
	services.IEventService
}

func (brokenService) ListEvents(context.Context) ([]*models.Event, error) {
	return nil, errors.New("connection reset")
}

func TestStorageFailureIsOpaque(t *testing.T) {
	directory := repositories.NewDirectoryMemoryRepository(nil, nil)
	app := newApp(brokenService{}, services.NewDirectoryService(directory))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/events", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if strings.Contains(string(body), "connection reset") {
		t.Errorf("internal error leaked: %s", body)
	}
}
