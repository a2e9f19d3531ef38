package server

import (
	"log"
	"net/http"
	"strconv"

	"swipe-judge/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Home()).ServeHTTP(w, r)
}

func (s *Server) handleAdminView(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Admin()).ServeHTTP(w, r)
}

func (s *Server) handlePlayView(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parsePlayPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var count int64
	if err := s.db.Table("games").Where("id = ?", gameID).Count(&count).Error; err != nil || count == 0 {
		log.Printf("play view missing game_id=%d", gameID)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.Play(strconv.FormatUint(uint64(gameID), 10), s.cfg.DecisionDisplayMillis)).ServeHTTP(w, r)
}
