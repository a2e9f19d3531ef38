package server

import (
	"sync"

	"github.com/google/uuid"
)

// Lobby tracks which participants are currently waiting on a group game.
// Presence is ephemeral: participants are opaque tokens, not rows, and the
// decision ledger in the database stays the single source of truth.
type Lobby struct {
	mu    sync.Mutex
	games map[uint]map[string]struct{}
}

func NewLobby() *Lobby {
	return &Lobby{
		games: make(map[uint]map[string]struct{}),
	}
}

// Join registers a new participant and returns its token plus the joined
// count after the join.
func (l *Lobby) Join(gameID uint) (string, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	group := l.games[gameID]
	if group == nil {
		group = make(map[string]struct{})
		l.games[gameID] = group
	}
	participantID := uuid.NewString()
	group[participantID] = struct{}{}
	return participantID, len(group)
}

func (l *Lobby) Leave(gameID uint, participantID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	group := l.games[gameID]
	if group == nil {
		return 0
	}
	delete(group, participantID)
	if len(group) == 0 {
		delete(l.games, gameID)
		return 0
	}
	return len(group)
}

func (l *Lobby) Count(gameID uint) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.games[gameID])
}

// Drop clears all presence for a game, used when the game is deleted.
func (l *Lobby) Drop(gameID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.games, gameID)
}
