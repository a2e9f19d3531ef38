package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"swipe-judge/internal/config"
	"swipe-judge/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// A single connection keeps the in-memory database alive for the test.
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func newServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(openTestDB(t), config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var body []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func validGameRequest() map[string]any {
	return map[string]any{
		"name":       "Blessings",
		"question":   "Would you bless this?",
		"minPlayers": 1,
		"modes":      []string{"solo"},
		"timer":      0,
		"useTimer":   false,
	}
}

func createGame(t *testing.T, ts *httptest.Server, overrides map[string]any) uint {
	t.Helper()
	payload := validGameRequest()
	for key, value := range overrides {
		payload[key] = value
	}
	resp := doRequest(t, ts, http.MethodPost, "/api/games", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return uint(body["id"].(float64))
}

func addTextContent(t *testing.T, ts *httptest.Server, gameID uint, text string) uint {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/content", map[string]any{
		"type": "text",
		"text": text,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return uint(body["id"].(float64))
}

func recordDecision(t *testing.T, ts *httptest.Server, gameID, contentID uint, outcome, participant string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/decisions", map[string]any{
		"contentId":     contentID,
		"outcome":       outcome,
		"participantId": participant,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
}

func gamePath(gameID uint) string {
	return "/api/games/" + uintString(gameID)
}

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
