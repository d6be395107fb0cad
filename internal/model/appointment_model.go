package model

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(32);not null"`
	Service   string    `gorm:"type:varchar(64);not null"`
	Date      string    `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD
	Time      string    `gorm:"type:varchar(5);not null"`        // HH:MM
	Status    string    `gorm:"type:varchar(32);not null;default:'confirmed'"`
	RoomId    string    `gorm:"type:varchar(255);index"` // conversation that created the booking
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}
