package entity

import "errors"

var (
	// ErrSlotTaken is returned when a booking loses the race for a slot.
	ErrSlotTaken = errors.New("slot is already booked")
	// ErrAppointmentNotFound is returned when cancelling an appointment
	// that does not exist or was already cancelled.
	ErrAppointmentNotFound = errors.New("appointment not found")
)
