package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	Model
	Name      string    `json:"name" gorm:"size:255;not null"`
	Galleries []Gallery `json:"galleries,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

type Gallery struct {
	Model
	EventID  uuid.UUID `json:"event_id" gorm:"type:char(36);not null;index"`
	Event    *Event    `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	PhotoURL string    `json:"photo_url" gorm:"size:512;not null"`
}

// BankData is a titled link. It has no soft-delete marker.
type BankData struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Link      string    `json:"link" gorm:"size:1024;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BankData) TableName() string {
	return "bank_data"
}

func (b *BankData) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
