package server

import (
	"net/http"

	"swipe-judge/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	db    *gorm.DB
	cfg   config.Config
	lobby *Lobby
	ws    *wsHub
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		db:    conn,
		cfg:   cfg,
		lobby: NewLobby(),
		ws:    newWSHub(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /admin", s.handleAdminView)
	mux.HandleFunc("GET /play/", s.handlePlayView)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("POST /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("PUT /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("DELETE /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("GET /ws/games/", s.handleWebsocket)
	return mux
}
