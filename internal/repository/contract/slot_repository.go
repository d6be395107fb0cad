package contract

import (
	"context"

	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/repository/specification"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) error
	// SeedBulk inserts slots, silently skipping rows whose (date, time, service)
	// identity already exists. Safe to call on every startup.
	SeedBulk(ctx context.Context, slots []*entity.Slot) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Slot, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Slot, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MarkBooked flips is_booked for the slot only if it is still free.
	// Returns entity.ErrSlotTaken when another booking won the race.
	MarkBooked(ctx context.Context, date, time, service string) error
	// MarkFree releases a previously booked slot.
	MarkFree(ctx context.Context, date, time, service string) error
}
