package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cafe is a dog-friendly cafe listing. Rating is denormalized: the
// arithmetic mean of its review ratings rounded to one decimal place,
// or 0 when no reviews exist.
type Cafe struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	RoadAddr      string    `gorm:"size:255;not null" json:"road_addr"`
	RegionAddr    string    `gorm:"size:255;not null" json:"region_addr"`
	ZipCode       string    `gorm:"size:20;not null" json:"zip_code"`
	Intro         *string   `gorm:"type:text" json:"intro,omitempty"`
	Menu          *string   `gorm:"type:text" json:"menu,omitempty"`
	OperatingTime *string   `gorm:"size:255" json:"operating_time,omitempty"`
	Image         string    `gorm:"type:text" json:"image"`
	PhoneNumber   string    `gorm:"size:30" json:"phone_number"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Rating        float64   `gorm:"not null;default:0" json:"rating"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Cafe) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
