package server

import (
	"net/http"
	"testing"

	"swipe-judge/internal/db"
)

func TestCreateGame(t *testing.T) {
	_, ts := newServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{
		"name":       "Blessings",
		"question":   "Would you bless this?",
		"minPlayers": 2,
		"modes":      []string{"solo", "group"},
		"timer":      10,
		"useTimer":   true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["name"] != "Blessings" {
		t.Fatalf("expected name to round-trip, got %v", body["name"])
	}
	if body["minPlayers"].(float64) != 2 {
		t.Fatalf("expected minPlayers 2, got %v", body["minPlayers"])
	}
	modes := body["modes"].([]any)
	if len(modes) != 2 || modes[0] != "solo" || modes[1] != "group" {
		t.Fatalf("expected modes to round-trip, got %v", modes)
	}
	if body["useTimer"] != true || body["timer"].(float64) != 10 {
		t.Fatalf("expected timer config to round-trip, got %v / %v", body["useTimer"], body["timer"])
	}
}

func TestCreateGameValidation(t *testing.T) {
	_, ts := newServer(t)

	cases := []struct {
		name      string
		overrides map[string]any
	}{
		{"empty name", map[string]any{"name": "   "}},
		{"zero minPlayers", map[string]any{"minPlayers": 0}},
		{"empty modes", map[string]any{"modes": []string{}}},
		{"unknown mode", map[string]any{"modes": []string{"arena"}}},
		{"repeated mode", map[string]any{"modes": []string{"solo", "solo"}}},
		{"useTimer without duration", map[string]any{"useTimer": true, "timer": 0}},
		{"timer too long", map[string]any{"timer": 999}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validGameRequest()
			for key, value := range tc.overrides {
				payload[key] = value
			}
			resp := doRequest(t, ts, http.MethodPost, "/api/games", payload)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if body["error"] == "" {
				t.Fatal("expected an error message")
			}
		})
	}
}

func TestGetGameNotFound(t *testing.T) {
	_, ts := newServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/games/999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "game not found" {
		t.Fatalf("expected game not found error, got %v", body["error"])
	}
}

func TestListGamesCreationOrder(t *testing.T) {
	_, ts := newServer(t)

	first := createGame(t, ts, map[string]any{"name": "First"})
	second := createGame(t, ts, map[string]any{"name": "Second"})
	third := createGame(t, ts, map[string]any{"name": "Third"})

	resp := doRequest(t, ts, http.MethodGet, "/api/games", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	games := decodeList(t, resp)
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}
	want := []uint{first, second, third}
	for i, game := range games {
		if uint(game["id"].(float64)) != want[i] {
			t.Fatalf("expected game %d at position %d, got %v", want[i], i, game["id"])
		}
	}
}

func TestUpdateGame(t *testing.T) {
	_, ts := newServer(t)

	gameID := createGame(t, ts, nil)
	resp := doRequest(t, ts, http.MethodPut, gamePath(gameID), map[string]any{
		"name":       "Renamed",
		"question":   "Still blessing?",
		"minPlayers": 3,
		"modes":      []string{"group"},
		"timer":      30,
		"useTimer":   true,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, gamePath(gameID), nil)
	body := decodeBody(t, resp)
	if body["name"] != "Renamed" || body["minPlayers"].(float64) != 3 {
		t.Fatalf("expected update to persist, got %v", body)
	}
}

func TestUpdateGameNotFound(t *testing.T) {
	_, ts := newServer(t)

	resp := doRequest(t, ts, http.MethodPut, "/api/games/42", validGameRequest())
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestDeleteGameCascades(t *testing.T) {
	srv, ts := newServer(t)

	gameID := createGame(t, ts, nil)
	contentID := addTextContent(t, ts, gameID, "sample")
	recordDecision(t, ts, gameID, contentID, "agree", "p1")
	recordDecision(t, ts, gameID, contentID, "disagree", "p2")

	resp := doRequest(t, ts, http.MethodDelete, gamePath(gameID), nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, resp.StatusCode)
	}

	for _, path := range []string{gamePath(gameID), gamePath(gameID) + "/content", gamePath(gameID) + "/statistics"} {
		resp := doRequest(t, ts, http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected %s to return %d, got %d", path, http.StatusNotFound, resp.StatusCode)
		}
	}

	var decisions, content, events int64
	srv.db.Model(&db.Decision{}).Where("game_id = ?", gameID).Count(&decisions)
	srv.db.Model(&db.ContentItem{}).Where("game_id = ?", gameID).Count(&content)
	srv.db.Model(&db.Event{}).Where("game_id = ?", gameID).Count(&events)
	if decisions != 0 || content != 0 || events != 0 {
		t.Fatalf("expected no orphans, got decisions=%d content=%d events=%d", decisions, content, events)
	}
}

func TestAddContentPayloadUnion(t *testing.T) {
	_, ts := newServer(t)
	gameID := createGame(t, ts, nil)

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"image without url", map[string]any{"type": "image"}},
		{"image with text", map[string]any{"type": "image", "url": "https://cdn.example/a.png", "text": "nope"}},
		{"text without body", map[string]any{"type": "text"}},
		{"text with url", map[string]any{"type": "text", "text": "hi", "url": "https://cdn.example/a.png"}},
		{"video without url", map[string]any{"type": "video"}},
		{"unknown type", map[string]any{"type": "audio", "url": "https://cdn.example/a.mp3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/content", tc.payload)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
			}
		})
	}

	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/content", map[string]any{
		"type": "image",
		"url":  "https://cdn.example/a.png",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
}

func TestAddContentUnknownGame(t *testing.T) {
	_, ts := newServer(t)

	resp := doRequest(t, ts, http.MethodPost, "/api/games/77/content", map[string]any{
		"type": "text",
		"text": "orphan",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestListContentCreationOrder(t *testing.T) {
	_, ts := newServer(t)
	gameID := createGame(t, ts, nil)

	first := addTextContent(t, ts, gameID, "first")
	second := addTextContent(t, ts, gameID, "second")

	resp := doRequest(t, ts, http.MethodGet, gamePath(gameID)+"/content", nil)
	items := decodeList(t, resp)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if uint(items[0]["id"].(float64)) != first || uint(items[1]["id"].(float64)) != second {
		t.Fatalf("expected creation order, got %v", items)
	}
}

func TestRecordDecisionAppendsLedger(t *testing.T) {
	srv, ts := newServer(t)
	gameID := createGame(t, ts, nil)
	contentID := addTextContent(t, ts, gameID, "sample")

	var before int64
	srv.db.Model(&db.Decision{}).Count(&before)

	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/decisions", map[string]any{
		"contentId":     contentID,
		"outcome":       "agree",
		"participantId": "p1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["outcome"] != "agree" || body["participantId"] != "p1" {
		t.Fatalf("expected stored record back, got %v", body)
	}

	var after int64
	srv.db.Model(&db.Decision{}).Count(&after)
	if after != before+1 {
		t.Fatalf("expected ledger to grow by one, got %d -> %d", before, after)
	}
}

func TestRecordDecisionBooleanForm(t *testing.T) {
	_, ts := newServer(t)
	gameID := createGame(t, ts, nil)
	contentID := addTextContent(t, ts, gameID, "sample")

	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/decisions", map[string]any{
		"contentId":     contentID,
		"decision":      false,
		"participantId": "p1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["outcome"] != "disagree" {
		t.Fatalf("expected boolean false to map to disagree, got %v", body["outcome"])
	}
}

func TestRecordDecisionMissingJudgment(t *testing.T) {
	_, ts := newServer(t)
	gameID := createGame(t, ts, nil)
	contentID := addTextContent(t, ts, gameID, "sample")

	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/decisions", map[string]any{
		"contentId":     contentID,
		"participantId": "p1",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestRecordDecisionContentFromOtherGame(t *testing.T) {
	_, ts := newServer(t)
	owner := createGame(t, ts, map[string]any{"name": "Owner"})
	other := createGame(t, ts, map[string]any{"name": "Other"})
	contentID := addTextContent(t, ts, owner, "sample")

	resp := doRequest(t, ts, http.MethodPost, gamePath(other)+"/decisions", map[string]any{
		"contentId":     contentID,
		"outcome":       "agree",
		"participantId": "p1",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestDuplicateDecisionsAccumulate(t *testing.T) {
	srv, ts := newServer(t)
	gameID := createGame(t, ts, nil)
	contentID := addTextContent(t, ts, gameID, "sample")

	recordDecision(t, ts, gameID, contentID, "agree", "p1")
	recordDecision(t, ts, gameID, contentID, "agree", "p1")

	var count int64
	srv.db.Model(&db.Decision{}).
		Where("content_item_id = ? AND participant_id = ?", contentID, "p1").
		Count(&count)
	if count != 2 {
		t.Fatalf("expected duplicates to accumulate, got %d rows", count)
	}
}

func TestJoinGroupGame(t *testing.T) {
	_, ts := newServer(t)
	gameID := createGame(t, ts, map[string]any{
		"modes":      []string{"group"},
		"minPlayers": 2,
	})

	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/participants", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["joined"].(float64) != 1 || body["ready"] != false {
		t.Fatalf("expected one joined and not ready, got %v", body)
	}
	if body["participant_id"] == "" {
		t.Fatal("expected a participant id")
	}

	resp = doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/participants", nil)
	body = decodeBody(t, resp)
	if body["joined"].(float64) != 2 || body["ready"] != true {
		t.Fatalf("expected ready after second join, got %v", body)
	}

	resp = doRequest(t, ts, http.MethodGet, gamePath(gameID)+"/participants", nil)
	body = decodeBody(t, resp)
	if body["joined"].(float64) != 2 {
		t.Fatalf("expected joined count 2, got %v", body)
	}
}

func TestJoinSoloOnlyGameConflict(t *testing.T) {
	_, ts := newServer(t)
	gameID := createGame(t, ts, nil)

	resp := doRequest(t, ts, http.MethodPost, gamePath(gameID)+"/participants", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestEventsAudit(t *testing.T) {
	_, ts := newServer(t)
	gameID := createGame(t, ts, nil)
	contentID := addTextContent(t, ts, gameID, "sample")
	recordDecision(t, ts, gameID, contentID, "agree", "p1")

	resp := doRequest(t, ts, http.MethodGet, gamePath(gameID)+"/events", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	events := body["events"].([]any)
	if len(events) != 3 {
		t.Fatalf("expected 3 audit events, got %d", len(events))
	}
	want := []string{"game_created", "content_added", "decision_recorded"}
	for i, raw := range events {
		event := raw.(map[string]any)
		if event["type"] != want[i] {
			t.Fatalf("expected event %q at position %d, got %v", want[i], i, event["type"])
		}
	}
}

func TestHomePage(t *testing.T) {
	_, ts := newServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestAdminPage(t *testing.T) {
	_, ts := newServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/admin", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestPlayViewRedirectsWhenMissing(t *testing.T) {
	_, ts := newServer(t)

	client := ts.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := client.Get(ts.URL + "/play/999")
	if err != nil {
		t.Fatalf("get play view: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, resp.StatusCode)
	}
}

func TestPlayView(t *testing.T) {
	_, ts := newServer(t)
	gameID := createGame(t, ts, nil)

	resp := doRequest(t, ts, http.MethodGet, "/play/"+uintString(gameID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}
