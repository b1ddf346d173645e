package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like records one (user, board) pair. The composite unique index
// enforces at most one like per user per board at the store level.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_board,priority:1" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_board,priority:2;index" json:"board_id"`
	Board     Board     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}
