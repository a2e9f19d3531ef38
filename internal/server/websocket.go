package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"swipe-judge/internal/db"

	"github.com/gorilla/websocket"
)

type wsHub struct {
	mu     sync.Mutex
	groups map[uint]map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[uint]map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(gameID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[gameID] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(gameID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if group, ok := h.groups[gameID]; ok {
		delete(group, conn)
		if len(group) == 0 {
			delete(h.groups, gameID)
		}
	}
	_ = conn.Close()
}

func (h *wsHub) Broadcast(gameID uint, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.groups[gameID]))
	for conn := range h.groups[gameID] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(gameID, conn)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseWebsocketPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, ok := s.loadGame(w, gameID); !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed game_id=%d error=%v", gameID, err)
		return
	}
	s.ws.Add(gameID, conn)
	go func() {
		defer s.ws.Remove(gameID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) broadcastParticipants(game *db.Game, joined int) {
	s.ws.Broadcast(game.ID, map[string]any{
		"type":        "participants",
		"joined":      joined,
		"min_players": game.MinPlayers,
		"ready":       joined >= game.MinPlayers,
	})
}

func (s *Server) broadcastStatistics(gameID uint) {
	rows, err := s.gameStatistics(gameID)
	if err != nil {
		log.Printf("statistics broadcast failed game_id=%d error=%v", gameID, err)
		return
	}
	s.ws.Broadcast(gameID, map[string]any{
		"type":       "statistics",
		"statistics": rows,
	})
}
