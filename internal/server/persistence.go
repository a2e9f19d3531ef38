package server

import (
	"encoding/json"
	"log"

	"swipe-judge/internal/db"

	"gorm.io/datatypes"
)

// EventPayload is the audit-event envelope. Only the fields relevant to a
// given event type are set; the rest are omitted from the stored JSON.
type EventPayload struct {
	GameName      string `json:"game_name,omitempty"`
	ContentID     uint   `json:"content_id,omitempty"`
	ContentType   string `json:"content_type,omitempty"`
	DecisionID    uint   `json:"decision_id,omitempty"`
	Outcome       string `json:"outcome,omitempty"`
	ParticipantID string `json:"participant_id,omitempty"`
}

// persistEvent appends an audit record. Audit writes are best-effort: a
// failure is logged but never turns a succeeded mutation into an error
// response.
func (s *Server) persistEvent(gameID uint, eventType string, payload EventPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("event encode failed game_id=%d type=%s error=%v", gameID, eventType, err)
		return
	}
	event := db.Event{
		GameID:  gameID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	if err := s.db.Create(&event).Error; err != nil {
		log.Printf("event persist failed game_id=%d type=%s error=%v", gameID, eventType, err)
	}
}
