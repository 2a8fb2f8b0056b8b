package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"tycoon/internal/sim"
	"tycoon/internal/store"
)

func newTestServer(t *testing.T) (*Server, *Host) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	studio, err := sim.NewStudio(sim.NewStudioInput{
		Name:           "API Test",
		Difficulty:     sim.DifficultyEasy,
		Specialization: sim.SpecDeveloper,
	}, 1, logger)
	if err != nil {
		t.Fatalf("new studio: %v", err)
	}
	st, err := store.Open(filepath.Join(t.TempDir(), "saves.db"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	host := NewHost(studio, st, 1, logger)
	return New(host, logger), host
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/v1/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var out sim.StatusView
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name != "API Test" || out.Day != 1 {
		t.Fatalf("unexpected status: %+v", out)
	}
}

func TestAdvanceEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/advance", `{"days":7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var out struct {
		Reports []sim.DayReport `json:"reports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Reports) != 7 {
		t.Fatalf("reports = %d, want 7", len(out.Reports))
	}
	if last := out.Reports[6]; last.Week != 2 || !last.Boundaries.Week {
		t.Fatalf("day 7 should close the week: %+v", last)
	}
}

func TestAdvanceWhilePausedIsBadRequest(t *testing.T) {
	srv, _ := newTestServer(t)
	if rec := doJSON(t, srv, http.MethodPost, "/v1/pause", ""); rec.Code != http.StatusOK {
		t.Fatalf("pause: %d", rec.Code)
	}
	rec := doJSON(t, srv, http.MethodPost, "/v1/advance", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 while paused", rec.Code)
	}
}

func TestDomainErrorMapping(t *testing.T) {
	srv, _ := newTestServer(t)
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "unknown employee", method: http.MethodPost, path: "/v1/roster/ghost/fire", status: http.StatusNotFound},
		{name: "locked genre", method: http.MethodPost, path: "/v1/project",
			body: `{"title":"X","genre":"mmorpg","platform":"pc","budget_micros":1000000}`, status: http.StatusForbidden},
		{name: "loan eligibility", method: http.MethodPost, path: "/v1/finance/loans/take",
			body: `{"loan":"large"}`, status: http.StatusForbidden},
		{name: "missing save", method: http.MethodPost, path: "/v1/saves/ghost/load", status: http.StatusNotFound},
		{name: "unknown body field", method: http.MethodPost, path: "/v1/roster/hire",
			body: `{"bogus":true}`, status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body)
			}
		})
	}
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/project",
		`{"title":"Skyline","genre":"casual","platform":"pc","budget_micros":2000000000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start project: %d: %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, srv, http.MethodPost, "/v1/project",
		`{"title":"Second","genre":"puzzle","platform":"pc","budget_micros":1000000}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second project: %d, want 409", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/v1/project", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Skyline") {
		t.Fatalf("get project: %d: %s", rec.Code, rec.Body)
	}
	if rec = doJSON(t, srv, http.MethodPost, "/v1/project/cancel", ""); rec.Code != http.StatusOK {
		t.Fatalf("cancel: %d", rec.Code)
	}
	if rec = doJSON(t, srv, http.MethodGet, "/v1/project", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get after cancel: %d, want 404", rec.Code)
	}
}

func TestSaveLoadOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/v1/advance", `{"days":3}`)

	if rec := doJSON(t, srv, http.MethodPost, "/v1/saves/slot1", ""); rec.Code != http.StatusOK {
		t.Fatalf("save: %d: %s", rec.Code, rec.Body)
	}
	doJSON(t, srv, http.MethodPost, "/v1/advance", `{"days":3}`)

	rec := doJSON(t, srv, http.MethodPost, "/v1/saves/slot1/load", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("load: %d: %s", rec.Code, rec.Body)
	}
	var out sim.StatusView
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Day != 4 {
		t.Fatalf("restored day = %d, want 4", out.Day)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/saves", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "slot1") {
		t.Fatalf("list saves: %d: %s", rec.Code, rec.Body)
	}
}

func TestNewGameReplacesSession(t *testing.T) {
	srv, host := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/v1/advance", `{"days":10}`)

	rec := doJSON(t, srv, http.MethodPost, "/v1/new",
		`{"name":"Fresh Start","difficulty":"hard","specialization":"artist"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("new game: %d: %s", rec.Code, rec.Body)
	}
	status := host.Studio().Status()
	if status.Name != "Fresh Start" || status.Day != 1 {
		t.Fatalf("session not replaced: %+v", status)
	}
	if status.MoneyMicros != 5_000*sim.MicrosPerCredit {
		t.Fatalf("hard difficulty money = %d", status.MoneyMicros)
	}
}

func TestStreamDeliversReports(t *testing.T) {
	srv, host := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The subscription is registered by the handler goroutine; wait for it
	// before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for {
		host.hub.mu.Lock()
		n := len(host.hub.clients)
		host.hub.mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("stream client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := host.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	var report sim.DayReport
	if err := conn.ReadJSON(&report); err != nil {
		t.Fatalf("read report: %v", err)
	}
	if report.Day != 2 {
		t.Fatalf("streamed day = %d, want 2", report.Day)
	}
}
