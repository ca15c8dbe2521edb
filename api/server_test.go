package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"techatlas/catalog"
	"techatlas/orchestrator"
	"techatlas/report"
	"techatlas/types"
)

func testDeps(t *testing.T) *Deps {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat := catalog.New()
	reports := report.NewStore(context.Background(), t.TempDir())
	return &Deps{
		Pipeline: orchestrator.NewPipeline(cat, reports),
		Tasks:    orchestrator.NewMemoryTaskStore(),
		Reports:  reports,
		Catalog:  cat,
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := NewRouter(testDeps(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCatalogEndpoints(t *testing.T) {
	r := NewRouter(testDeps(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/countries", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("countries status = %d", w.Code)
	}
	var countries struct {
		Countries []catalog.Country `json:"countries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &countries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(countries.Countries) == 0 {
		t.Errorf("no countries returned")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalog/domains", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("domains status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Artificial Intelligence") {
		t.Errorf("domains body = %s", w.Body.String())
	}
}

func TestStartAnalysisValidation(t *testing.T) {
	r := NewRouter(testDeps(t))

	tests := []struct {
		name string
		body string
	}{
		{"missing domain", `{"country":"Japan"}`},
		{"missing country", `{"domain":"robotics"}`},
		{"same country pair", `{"country":"Japan","country2":"japan","domain":"robotics"}`},
		{"negative time range", `{"country":"Japan","domain":"robotics","time_range":-3}`},
		{"malformed json", `{"country":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestAnalysisStatusLifecycle(t *testing.T) {
	deps := testDeps(t)
	r := NewRouter(deps)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/status/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown task status = %d, want 404", w.Code)
	}

	task := &orchestrator.Task{
		ID:     "task-1",
		Status: orchestrator.TaskCompleted,
		Result: &types.AnalysisResult{Domain: "Robotics", Countries: []string{"Japan"}},
	}
	if err := deps.Tasks.Put(context.Background(), task); err != nil {
		t.Fatal(err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/status/task-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Status  string                `json:"status"`
		Results *types.AnalysisResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "completed" || resp.Results == nil || resp.Results.Domain != "Robotics" {
		t.Errorf("response = %s", w.Body.String())
	}
}

func TestAnalysisHistory(t *testing.T) {
	deps := testDeps(t)
	r := NewRouter(deps)
	ctx := context.Background()

	// Unfinished tasks must not appear in the history.
	if err := deps.Tasks.Put(ctx, &orchestrator.Task{ID: "pending-1", Status: orchestrator.TaskPending}); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"done-1", "done-2"} {
		task := &orchestrator.Task{
			ID:     id,
			Status: orchestrator.TaskCompleted,
			Result: &types.AnalysisResult{
				Domain:      "Robotics",
				Countries:   []string{"Japan", "Germany"},
				DataQuality: types.DataQuality{Confidence: "medium"},
			},
		}
		if err := deps.Tasks.Put(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/history", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	var resp struct {
		Count   int `json:"count"`
		History []struct {
			TaskID     string   `json:"task_id"`
			Countries  []string `json:"countries"`
			Domain     string   `json:"domain"`
			Confidence string   `json:"confidence"`
		} `json:"history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.History) != 2 {
		t.Fatalf("history count = %d, body = %s", resp.Count, w.Body.String())
	}
	// Newest submission first.
	if resp.History[0].TaskID != "done-2" || resp.History[1].TaskID != "done-1" {
		t.Errorf("history order wrong: %s", w.Body.String())
	}
	if resp.History[0].Domain != "Robotics" || resp.History[0].Confidence != "medium" {
		t.Errorf("history entry mangled: %+v", resp.History[0])
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/history?limit=0", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d, want 400", w.Code)
	}
}

func TestDownloadEndpoint(t *testing.T) {
	deps := testDeps(t)
	r := NewRouter(deps)

	if _, err := deps.Reports.Save(context.Background(), "r.md", "# body"); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/download/r.md", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("download status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "# body") {
		t.Errorf("download body = %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/download/..%2Fsecret", nil))
	if w.Code == http.StatusOK {
		t.Errorf("traversal name served with 200")
	}
}
