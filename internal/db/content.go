package db

import "time"

const (
	ContentImage = "image"
	ContentText  = "text"
	ContentVideo = "video"
)

// ContentItem is one unit a participant judges. The payload is a tagged
// union: image and video carry URL, text carries Text. Items are immutable
// after creation, so there is no update path anywhere in the codebase.
type ContentItem struct {
	ID        uint       `gorm:"primaryKey"`
	GameID    uint       `gorm:"index;not null"`
	Type      string     `gorm:"size:16;not null"`
	URL       string     `gorm:"size:512;not null;default:''"`
	Text      string     `gorm:"size:500;not null;default:''"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	Decisions []Decision `gorm:"foreignKey:ContentItemID;constraint:OnDelete:CASCADE"`
}
