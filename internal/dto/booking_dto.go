package dto

import (
	"time"

	"github.com/google/uuid"
)

type SlotResponse struct {
	Id       uuid.UUID `json:"id"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Service  string    `json:"service"`
	IsBooked bool      `json:"is_booked"`
}

type AppointmentResponse struct {
	Id           uuid.UUID `json:"id"`
	PatientName  string    `json:"patient_name"`
	PatientPhone string    `json:"patient_phone"`
	Service      string    `json:"service"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	RoomId       string    `json:"room_id,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListAppointmentsRequest struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

type ListSlotsRequest struct {
	Date    string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Service string `query:"service"`
}

type CancelAppointmentResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
