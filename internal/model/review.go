package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User       `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CafeID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"cafe_id"`
	Cafe      Cafe       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Rating    float64    `gorm:"not null" json:"rating"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Images    StringList `gorm:"type:jsonb;default:'[]'" json:"images"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
