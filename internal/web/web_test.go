package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Joseda-hg/taskmanager/internal/db"
	"github.com/Joseda-hg/taskmanager/internal/model"
	"github.com/Joseda-hg/taskmanager/internal/report"
	"github.com/Joseda-hg/taskmanager/internal/tracker"
)

func TestRequiresBasicAuth(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := serve(handler, http.MethodGet, "/api/tasks", "", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}

	rec = serve(handler, http.MethodGet, "/api/tasks", "", "admin", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong password, got %d", rec.Code)
	}
}

func TestCreateAndListTasks(t *testing.T) {
	handler, session := newTestServer(t)

	body := `{"username":"admin","title":"T1","description":"first","due_date":"2000-01-01"}`
	rec := serve(handler, http.MethodPost, "/api/tasks", body, "admin", "password")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created taskPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if created.Number != 1 || created.DueDate != "2000-01-01" || created.AssignedDate != "2024-06-15" {
		t.Fatalf("unexpected task %+v", created)
	}

	rec = serve(handler, http.MethodGet, "/api/tasks/mine", "", "admin", "password")
	var mine []taskPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 task, got %d", len(mine))
	}

	rec = serve(handler, http.MethodGet, "/api/reports/tasks", "", "admin", "password")
	var overview model.TaskOverview
	if err := json.Unmarshal(rec.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.Overdue != 1 || overview.OverduePercent != 100 {
		t.Fatalf("unexpected overview %+v", overview)
	}
	if len(session.AllTasks()) != 1 {
		t.Fatalf("expected task in session")
	}
}

func TestCreateTaskErrors(t *testing.T) {
	handler, _ := newTestServer(t)

	cases := map[string]string{
		"unknown user": `{"username":"ghost","title":"T","due_date":"2999-01-01"}`,
		"bad date":     `{"title":"T","due_date":"tomorrow"}`,
		"empty title":  `{"title":"","due_date":"2999-01-01"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := serve(handler, http.MethodPost, "/api/tasks", body, "admin", "password")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAdminRoutes(t *testing.T) {
	handler, session := newTestServer(t)

	rec := serve(handler, http.MethodPost, "/api/users", `{"username":"sam","password":"pw"}`, "admin", "password")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "pw") {
		t.Fatalf("expected password to be omitted, got %s", rec.Body.String())
	}

	rec = serve(handler, http.MethodPost, "/api/users", `{"username":"sam","password":"pw"}`, "admin", "password")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", rec.Code)
	}

	rec = serve(handler, http.MethodGet, "/api/stats", "", "sam", "pw")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	rec = serve(handler, http.MethodGet, "/api/stats", "", "admin", "password")
	var stats tracker.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Users != 2 || stats.Tasks != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if !session.UserExists("sam") {
		t.Fatalf("expected sam to be registered")
	}
}

func TestGetTaskByNumber(t *testing.T) {
	handler, session := newTestServer(t)
	if _, err := session.AddTask(context.Background(), tracker.TaskInput{
		Username: "admin",
		Title:    "T1",
		DueDate:  time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("add task: %v", err)
	}

	if rec := serve(handler, http.MethodGet, "/api/tasks/1", "", "admin", "password"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(handler, http.MethodGet, "/api/tasks/42", "", "admin", "password"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := serve(handler, http.MethodGet, "/api/tasks/abc", "", "admin", "password"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func serve(handler http.Handler, method, path, body, username, password string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if username != "" {
		req.SetBasicAuth(username, password)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func newTestServer(t *testing.T) (http.Handler, *tracker.Session) {
	t.Helper()
	store, err := db.NewTextStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	session, err := tracker.Open(context.Background(), store, tracker.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	return NewServer(session, report.NewWriter(t.TempDir())).Handler(), session
}
