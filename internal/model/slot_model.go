package model

import (
	"time"

	"github.com/google/uuid"
)

type Slot struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_slot_identity"` // YYYY-MM-DD
	Time      string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_slot_identity"`  // HH:MM
	Service   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_slot_identity"`
	IsBooked  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Slot) TableName() string {
	return "available_slots"
}
