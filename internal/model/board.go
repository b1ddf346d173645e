package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryInfo     = "info"
	CategoryGeneral  = "general"
	CategoryQuestion = "question"
)

// Board is a community post. LikeCount and CommentIDs are denormalized:
// LikeCount must always equal the number of Like rows referencing the
// board, and CommentIDs holds its comment ids in creation order.
type Board struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User       User       `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Images     StringList `gorm:"type:jsonb;default:'[]'" json:"images"`
	Category   string     `gorm:"size:20;not null;index" json:"category"` // 'info', 'general', 'question'
	AnimalType string     `gorm:"size:50" json:"animal_type"`
	LikeCount  int        `gorm:"not null;default:0" json:"like_count"`
	CommentIDs UUIDList   `gorm:"type:jsonb;default:'[]'" json:"comment_ids"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID, err = uuid.NewV7()
	}
	return
}

// ValidCategory reports whether name is one of the fixed categories.
func ValidCategory(name string) bool {
	switch name {
	case CategoryInfo, CategoryGeneral, CategoryQuestion:
		return true
	}
	return false
}
