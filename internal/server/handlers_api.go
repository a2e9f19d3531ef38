package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"swipe-judge/internal/db"

	"gorm.io/gorm"
)

type gameRequest struct {
	Name       string   `json:"name" validate:"required"`
	Question   string   `json:"question" validate:"required"`
	MinPlayers int      `json:"minPlayers" validate:"min=1"`
	Modes      []string `json:"modes" validate:"required,min=1,dive,oneof=solo group"`
	Timer      int      `json:"timer" validate:"min=0"`
	UseTimer   bool     `json:"useTimer"`
}

type contentRequest struct {
	Type string `json:"type" validate:"required"`
	URL  string `json:"url"`
	Text string `json:"text"`
}

type decisionRequest struct {
	ContentID     uint   `json:"contentId" validate:"required"`
	Decision      *bool  `json:"decision"`
	Outcome       string `json:"outcome" validate:"omitempty,oneof=agree disagree time_up"`
	ParticipantID string `json:"participantId" validate:"required"`
}

type gameResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Question   string    `json:"question"`
	MinPlayers int       `json:"minPlayers"`
	Modes      []string  `json:"modes"`
	Timer      int       `json:"timer"`
	UseTimer   bool      `json:"useTimer"`
	CreatedAt  time.Time `json:"createdAt"`
}

type contentResponse struct {
	ID        uint      `json:"id"`
	GameID    uint      `json:"gameId"`
	Type      string    `json:"type"`
	URL       string    `json:"url,omitempty"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type decisionResponse struct {
	ID            uint      `json:"id"`
	GameID        uint      `json:"gameId"`
	ContentID     uint      `json:"contentId"`
	Outcome       string    `json:"outcome"`
	ParticipantID string    `json:"participantId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func gameJSON(game *db.Game) gameResponse {
	modes := game.ModeList()
	if modes == nil {
		modes = []string{}
	}
	return gameResponse{
		ID:         game.ID,
		Name:       game.Name,
		Question:   game.Question,
		MinPlayers: game.MinPlayers,
		Modes:      modes,
		Timer:      game.TimerSeconds,
		UseTimer:   game.UseTimer,
		CreatedAt:  game.CreatedAt,
	}
}

func contentJSON(item *db.ContentItem) contentResponse {
	return contentResponse{
		ID:        item.ID,
		GameID:    item.GameID,
		Type:      item.Type,
		URL:       item.URL,
		Text:      item.Text,
		CreatedAt: item.CreatedAt,
	}
}

func decisionJSON(decision *db.Decision) decisionResponse {
	return decisionResponse{
		ID:            decision.ID,
		GameID:        decision.GameID,
		ContentID:     decision.ContentItemID,
		Outcome:       decision.Outcome,
		ParticipantID: decision.ParticipantID,
		CreatedAt:     decision.CreatedAt,
	}
}

func (s *Server) handleGameSubroutes(w http.ResponseWriter, r *http.Request) {
	gameID, action, ok := parseGamePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if action == "" {
		switch r.Method {
		case http.MethodGet:
			s.handleGetGame(w, r, gameID)
		case http.MethodPut:
			s.handleUpdateGame(w, r, gameID)
		case http.MethodDelete:
			s.handleDeleteGame(w, r, gameID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		switch action {
		case "content":
			s.handleListContent(w, r, gameID)
		case "statistics":
			s.handleStatistics(w, r, gameID)
		case "events":
			s.handleEvents(w, r, gameID)
		case "participants":
			s.handleParticipantCount(w, r, gameID)
		default:
			http.NotFound(w, r)
		}
	case http.MethodPost:
		switch action {
		case "content":
			s.handleAddContent(w, r, gameID)
		case "decisions":
			s.handleRecordDecision(w, r, gameID)
		case "participants":
			s.handleJoinGame(w, r, gameID)
		default:
			http.NotFound(w, r)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// loadGame resolves a game or writes the error response itself.
func (s *Server) loadGame(w http.ResponseWriter, gameID uint) (*db.Game, bool) {
	var game db.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
		} else {
			log.Printf("game lookup failed game_id=%d error=%v", gameID, err)
			writeError(w, http.StatusInternalServerError, "server error")
		}
		return nil, false
	}
	return &game, true
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	var games []db.Game
	if err := s.db.Order("created_at asc, id asc").Find(&games).Error; err != nil {
		log.Printf("game list failed error=%v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	resp := make([]gameResponse, 0, len(games))
	for i := range games {
		resp = append(resp, gameJSON(&games[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, gameID uint) {
	game, ok := s.loadGame(w, gameID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, gameJSON(game))
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateGameRequest(&req, s.cfg.MaxTimerSeconds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	modes, err := db.EncodeModes(req.Modes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	game := db.Game{
		Name:         req.Name,
		Question:     req.Question,
		MinPlayers:   req.MinPlayers,
		Modes:        modes,
		TimerSeconds: req.Timer,
		UseTimer:     req.UseTimer,
	}
	if err := s.db.Create(&game).Error; err != nil {
		log.Printf("game create failed error=%v", err)
		writeError(w, http.StatusInternalServerError, "failed to create game")
		return
	}
	s.persistEvent(game.ID, "game_created", EventPayload{GameName: game.Name})
	log.Printf("game created game_id=%d name=%q", game.ID, game.Name)
	writeJSON(w, http.StatusCreated, gameJSON(&game))
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request, gameID uint) {
	var req gameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateGameRequest(&req, s.cfg.MaxTimerSeconds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	game, ok := s.loadGame(w, gameID)
	if !ok {
		return
	}
	modes, err := db.EncodeModes(req.Modes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	game.Name = req.Name
	game.Question = req.Question
	game.MinPlayers = req.MinPlayers
	game.Modes = modes
	game.TimerSeconds = req.Timer
	game.UseTimer = req.UseTimer
	if err := s.db.Save(game).Error; err != nil {
		log.Printf("game update failed game_id=%d error=%v", gameID, err)
		writeError(w, http.StatusInternalServerError, "failed to update game")
		return
	}
	s.persistEvent(game.ID, "game_updated", EventPayload{GameName: game.Name})
	log.Printf("game updated game_id=%d name=%q", game.ID, game.Name)
	writeJSON(w, http.StatusOK, gameJSON(game))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request, gameID uint) {
	game, ok := s.loadGame(w, gameID)
	if !ok {
		return
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", game.ID).Delete(&db.Decision{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", game.ID).Delete(&db.ContentItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", game.ID).Delete(&db.Event{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Game{}, game.ID).Error
	})
	if err != nil {
		log.Printf("game delete failed game_id=%d error=%v", gameID, err)
		writeError(w, http.StatusInternalServerError, "failed to delete game")
		return
	}
	s.lobby.Drop(gameID)
	log.Printf("game deleted game_id=%d", gameID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request, gameID uint) {
	if _, ok := s.loadGame(w, gameID); !ok {
		return
	}
	var items []db.ContentItem
	if err := s.db.Where("game_id = ?", gameID).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		log.Printf("content list failed game_id=%d error=%v", gameID, err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	resp := make([]contentResponse, 0, len(items))
	for i := range items {
		resp = append(resp, contentJSON(&items[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddContent(w http.ResponseWriter, r *http.Request, gameID uint) {
	var req contentRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateContentRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, ok := s.loadGame(w, gameID); !ok {
		return
	}
	item := db.ContentItem{
		GameID: gameID,
		Type:   req.Type,
		URL:    req.URL,
		Text:   req.Text,
	}
	if err := s.db.Create(&item).Error; err != nil {
		log.Printf("content create failed game_id=%d error=%v", gameID, err)
		writeError(w, http.StatusInternalServerError, "failed to add content")
		return
	}
	s.persistEvent(gameID, "content_added", EventPayload{ContentID: item.ID, ContentType: item.Type})
	log.Printf("content added game_id=%d content_id=%d type=%s", gameID, item.ID, item.Type)
	writeJSON(w, http.StatusCreated, contentJSON(&item))
}

func (s *Server) handleRecordDecision(w http.ResponseWriter, r *http.Request, gameID uint) {
	var req decisionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, resolveFieldError(err).Error())
		return
	}
	outcome := req.Outcome
	if outcome == "" {
		if req.Decision == nil {
			writeError(w, http.StatusBadRequest, "decision or outcome is required")
			return
		}
		outcome = db.OutcomeFromJudgment(*req.Decision)
	}
	participantID, err := validateParticipantID(req.ParticipantID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, ok := s.loadGame(w, gameID); !ok {
		return
	}
	var item db.ContentItem
	if err := s.db.First(&item, "id = ? AND game_id = ?", req.ContentID, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "content not found")
		} else {
			log.Printf("content lookup failed game_id=%d content_id=%d error=%v", gameID, req.ContentID, err)
			writeError(w, http.StatusInternalServerError, "server error")
		}
		return
	}
	decision := db.Decision{
		GameID:        gameID,
		ContentItemID: item.ID,
		Outcome:       outcome,
		ParticipantID: participantID,
	}
	if err := s.db.Create(&decision).Error; err != nil {
		log.Printf("decision create failed game_id=%d content_id=%d error=%v", gameID, item.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to record decision")
		return
	}
	s.persistEvent(gameID, "decision_recorded", EventPayload{
		ContentID:     item.ID,
		DecisionID:    decision.ID,
		Outcome:       outcome,
		ParticipantID: participantID,
	})
	log.Printf("decision recorded game_id=%d content_id=%d outcome=%s participant=%s", gameID, item.ID, outcome, participantID)
	writeJSON(w, http.StatusCreated, decisionJSON(&decision))
	s.broadcastStatistics(gameID)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request, gameID uint) {
	if _, ok := s.loadGame(w, gameID); !ok {
		return
	}
	rows, err := s.gameStatistics(gameID)
	if err != nil {
		log.Printf("statistics failed game_id=%d error=%v", gameID, err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, gameID uint) {
	if _, ok := s.loadGame(w, gameID); !ok {
		return
	}
	var records []db.Event
	if err := s.db.Where("game_id = ?", gameID).Order("created_at asc, id asc").Find(&records).Error; err != nil {
		log.Printf("event list failed game_id=%d error=%v", gameID, err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	events := make([]map[string]any, 0, len(records))
	for _, record := range records {
		events = append(events, map[string]any{
			"id":         record.ID,
			"type":       record.Type,
			"payload":    record.Payload,
			"created_at": record.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id": gameID,
		"events":  events,
	})
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request, gameID uint) {
	game, ok := s.loadGame(w, gameID)
	if !ok {
		return
	}
	if !game.HasMode(db.ModeGroup) {
		writeError(w, http.StatusConflict, "game does not support group mode")
		return
	}
	participantID, joined := s.lobby.Join(gameID)
	log.Printf("participant joined game_id=%d participant=%s joined=%d", gameID, participantID, joined)
	writeJSON(w, http.StatusCreated, map[string]any{
		"participant_id": participantID,
		"joined":         joined,
		"min_players":    game.MinPlayers,
		"ready":          joined >= game.MinPlayers,
	})
	s.broadcastParticipants(game, joined)
}

func (s *Server) handleParticipantCount(w http.ResponseWriter, r *http.Request, gameID uint) {
	game, ok := s.loadGame(w, gameID)
	if !ok {
		return
	}
	joined := s.lobby.Count(gameID)
	writeJSON(w, http.StatusOK, map[string]any{
		"joined":      joined,
		"min_players": game.MinPlayers,
		"ready":       joined >= game.MinPlayers,
	})
}
