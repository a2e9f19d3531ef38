package db

import "time"

// Decision outcomes. Timed-out presentations are recorded distinctly instead
// of being forced into a boolean; the statistics projection reports them in
// their own column.
const (
	OutcomeAgree    = "agree"
	OutcomeDisagree = "disagree"
	OutcomeTimeUp   = "time_up"
)

func ValidOutcome(outcome string) bool {
	switch outcome {
	case OutcomeAgree, OutcomeDisagree, OutcomeTimeUp:
		return true
	}
	return false
}

// OutcomeFromJudgment maps the boolean wire form onto an outcome.
func OutcomeFromJudgment(agree bool) string {
	if agree {
		return OutcomeAgree
	}
	return OutcomeDisagree
}

// Decision is one ledger entry. The ledger is append-only: rows are created
// with an implicit timestamp and never updated, so the struct carries no
// UpdatedAt column.
type Decision struct {
	ID            uint      `gorm:"primaryKey"`
	GameID        uint      `gorm:"index;not null"`
	ContentItemID uint      `gorm:"index;not null"`
	Outcome       string    `gorm:"size:16;not null"`
	ParticipantID string    `gorm:"size:64;not null"`
	CreatedAt     time.Time `gorm:"not null"`
}
