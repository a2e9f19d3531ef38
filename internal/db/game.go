package db

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	ModeSolo  = "solo"
	ModeGroup = "group"
)

type Game struct {
	ID           uint           `gorm:"primaryKey"`
	Name         string         `gorm:"size:80;not null"`
	Question     string         `gorm:"size:200;not null"`
	MinPlayers   int            `gorm:"not null;default:1"`
	Modes        datatypes.JSON `gorm:"not null"`
	TimerSeconds int            `gorm:"not null;default:0"`
	UseTimer     bool           `gorm:"not null;default:false"`
	CreatedAt    time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
	Content      []ContentItem  `gorm:"constraint:OnDelete:CASCADE"`
	Decisions    []Decision     `gorm:"constraint:OnDelete:CASCADE"`
	Events       []Event        `gorm:"constraint:OnDelete:CASCADE"`
}

// ModeList decodes the stored mode set. A corrupt column yields an empty set
// rather than an error; writes always go through EncodeModes.
func (g *Game) ModeList() []string {
	var modes []string
	if err := json.Unmarshal(g.Modes, &modes); err != nil {
		return nil
	}
	return modes
}

func (g *Game) HasMode(mode string) bool {
	for _, m := range g.ModeList() {
		if m == mode {
			return true
		}
	}
	return false
}

func EncodeModes(modes []string) (datatypes.JSON, error) {
	data, err := json.Marshal(modes)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
