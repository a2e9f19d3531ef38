package server

import "swipe-judge/internal/db"

type contentStats struct {
	ContentID     uint   `json:"contentId"`
	Type          string `json:"type"`
	URL           string `json:"url,omitempty"`
	Text          string `json:"text,omitempty"`
	Agreements    int64  `json:"agreements"`
	Disagreements int64  `json:"disagreements"`
	Timeouts      int64  `json:"timeouts"`
	Total         int64  `json:"total"`
}

// gameStatistics is the read-side projection over the decision ledger. It is
// recomputed from the catalog and ledger on every call; there is no counter
// state anywhere that could drift. LEFT JOIN keeps items with zero decisions
// in the result with all-zero counts.
func (s *Server) gameStatistics(gameID uint) ([]contentStats, error) {
	rows := make([]contentStats, 0)
	err := s.db.
		Table("content_items AS c").
		Select(`c.id AS content_id, c.type, c.url, c.text,
			COUNT(CASE WHEN d.outcome = ? THEN 1 END) AS agreements,
			COUNT(CASE WHEN d.outcome = ? THEN 1 END) AS disagreements,
			COUNT(CASE WHEN d.outcome = ? THEN 1 END) AS timeouts`,
			db.OutcomeAgree, db.OutcomeDisagree, db.OutcomeTimeUp).
		Joins("LEFT JOIN decisions d ON d.content_item_id = c.id").
		Where("c.game_id = ?", gameID).
		Group("c.id, c.type, c.url, c.text, c.created_at").
		Order("c.created_at asc, c.id asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	// Total counts actual judgments; timeouts are reported but excluded so
	// consensus math stays defined over agree/disagree alone.
	for i := range rows {
		rows[i].Total = rows[i].Agreements + rows[i].Disagreements
	}
	return rows, nil
}

// consensusPercent is the share of the majority judgment. Callers must not
// divide by zero themselves; an undecided item reports zero consensus.
func consensusPercent(agreements, disagreements int64) float64 {
	total := agreements + disagreements
	if total == 0 {
		return 0
	}
	majority := agreements
	if disagreements > majority {
		majority = disagreements
	}
	return float64(majority) / float64(total) * 100
}
