package entity

import (
	"time"

	"github.com/google/uuid"
)

type Slot struct {
	Id        uuid.UUID
	Date      string
	Time      string
	Service   string
	IsBooked  bool
	CreatedAt time.Time
}
