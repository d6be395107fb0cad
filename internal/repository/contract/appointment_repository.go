package contract

import (
	"context"

	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Appointment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Appointment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateStatus moves an appointment to a new status. Returns
	// entity.ErrAppointmentNotFound when no row matched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
