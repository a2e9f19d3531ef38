// Package session drives a single participant through one game: selection,
// optional group gating, one judgment per presented item, completion. The
// machine is an explicit value with a transition API instead of ambient
// shared state, so every transition is deterministic and testable.
package session

import (
	"errors"
	"sync"
	"time"
)

type State int

const (
	SelectingGame State = iota
	AwaitingParticipants
	PresentingItem
	DecisionCaptured
	Complete
)

func (s State) String() string {
	switch s {
	case SelectingGame:
		return "selecting_game"
	case AwaitingParticipants:
		return "awaiting_participants"
	case PresentingItem:
		return "presenting_item"
	case DecisionCaptured:
		return "decision_captured"
	case Complete:
		return "complete"
	}
	return "unknown"
}

type Outcome string

const (
	OutcomeAgree    Outcome = "agree"
	OutcomeDisagree Outcome = "disagree"
	OutcomeTimeUp   Outcome = "time_up"
)

type Config struct {
	GroupMode  bool
	MinPlayers int
	ItemCount  int
	// TimerDuration arms a per-presentation timeout that records a time_up
	// judgment. Zero disables the timer.
	TimerDuration time.Duration
}

// Machine is safe for use by the goroutine driving the session plus the
// timer callback. The judgment callback runs with the machine locked and
// must not call back into it.
type Machine struct {
	mu         sync.Mutex
	cfg        Config
	state      State
	index      int
	joined     int
	timer      *time.Timer
	onJudgment func(index int, outcome Outcome)
}

func New(cfg Config, onJudgment func(index int, outcome Outcome)) *Machine {
	return &Machine{
		cfg:        cfg,
		state:      SelectingGame,
		onJudgment: onJudgment,
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

func (m *Machine) Joined() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joined
}

// Start leaves SelectingGame. Solo games move straight to the first item;
// group games wait for enough participants.
func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != SelectingGame {
		return errors.New("game already selected")
	}
	if m.cfg.ItemCount <= 0 {
		m.state = Complete
		return nil
	}
	if m.cfg.GroupMode {
		m.state = AwaitingParticipants
		return nil
	}
	m.present(0)
	return nil
}

// ParticipantJoined counts one joined participant and returns the new count.
// The machine leaves AwaitingParticipants once the minimum is reached.
func (m *Machine) ParticipantJoined() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != AwaitingParticipants {
		return m.joined, errors.New("not waiting for participants")
	}
	m.joined++
	if m.joined >= m.cfg.MinPlayers {
		m.present(0)
	}
	return m.joined, nil
}

// Judge records exactly one judgment for the presented item. A judgment
// during the DecisionCaptured display is rejected: the commit is locked
// until Advance.
func (m *Machine) Judge(outcome Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case PresentingItem:
		m.judge(outcome)
		return nil
	case DecisionCaptured:
		return errors.New("decision already captured for this item")
	default:
		return errors.New("no item is being presented")
	}
}

// Advance leaves the DecisionCaptured display, either to the next item or
// to Complete, which is terminal.
func (m *Machine) Advance() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != DecisionCaptured {
		return errors.New("no captured decision to advance from")
	}
	if m.index+1 < m.cfg.ItemCount {
		m.present(m.index + 1)
		return nil
	}
	m.state = Complete
	return nil
}

// Stop cancels any pending timer, for session teardown.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimer()
}

func (m *Machine) present(index int) {
	m.cancelTimer()
	m.state = PresentingItem
	m.index = index
	if m.cfg.TimerDuration > 0 {
		m.timer = time.AfterFunc(m.cfg.TimerDuration, func() {
			m.timeout(index)
		})
	}
}

// timeout fires from the armed timer. The index guard drops a stale firing
// that lost the race against a manual judgment.
func (m *Machine) timeout(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != PresentingItem || m.index != index {
		return
	}
	m.judge(OutcomeTimeUp)
}

func (m *Machine) judge(outcome Outcome) {
	m.cancelTimer()
	if m.onJudgment != nil {
		m.onJudgment(m.index, outcome)
	}
	m.state = DecisionCaptured
}

func (m *Machine) cancelTimer() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
