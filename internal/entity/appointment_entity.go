package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

type Appointment struct {
	Id        uuid.UUID
	Name      string
	Phone     string
	Service   string
	Date      string
	Time      string
	Status    string
	RoomId    string
	CreatedAt time.Time
}
