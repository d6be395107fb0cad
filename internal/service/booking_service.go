package service

import (
	"context"
	"fmt"

	"clinic-assistant-be/internal/dto"
	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/pkg/logger"
	"clinic-assistant-be/internal/pkg/mailer"
	"clinic-assistant-be/internal/repository/specification"
	"clinic-assistant-be/internal/repository/unitofwork"
	"clinic-assistant-be/pkg/events"
	pktNats "clinic-assistant-be/pkg/nats"

	"github.com/google/uuid"
)

// IBookingService covers the staff-facing booking administration:
// inspecting the schedule and cancelling appointments.
type IBookingService interface {
	ListAppointments(ctx context.Context, date string) ([]*dto.AppointmentResponse, error)
	ListSlots(ctx context.Context, date, service string) ([]*dto.SlotResponse, error)
	CancelAppointment(ctx context.Context, id uuid.UUID) (*dto.CancelAppointmentResponse, error)
}

type bookingService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	staffEmail     string
	log            logger.ILogger
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	staffEmail string,
	log logger.ILogger,
) IBookingService {
	return &bookingService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		staffEmail:     staffEmail,
		log:            log,
	}
}

func (s *bookingService) ListAppointments(ctx context.Context, date string) ([]*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "date"},
	}
	if date != "" {
		specs = append(specs, specification.ByDate{Date: date})
	}

	appointments, err := uow.AppointmentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, &dto.AppointmentResponse{
			Id:           a.Id,
			PatientName:  a.Name,
			PatientPhone: a.Phone,
			Service:      a.Service,
			Date:         a.Date,
			Time:         a.Time,
			RoomId:       a.RoomId,
			Status:       a.Status,
			CreatedAt:    a.CreatedAt,
		})
	}
	return result, nil
}

func (s *bookingService) ListSlots(ctx context.Context, date, service string) ([]*dto.SlotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "time"},
	}
	if date != "" {
		specs = append(specs, specification.ByDate{Date: date})
	}
	if service != "" {
		specs = append(specs, specification.ByService{Service: service})
	}

	slots, err := uow.SlotRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, &dto.SlotResponse{
			Id:       slot.Id,
			Date:     slot.Date,
			Time:     slot.Time,
			Service:  slot.Service,
			IsBooked: slot.IsBooked,
		})
	}
	return result, nil
}

func (s *bookingService) CancelAppointment(ctx context.Context, id uuid.UUID) (*dto.CancelAppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	appointment, err := uow.AppointmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, entity.ErrAppointmentNotFound
	}
	if appointment.Status == entity.AppointmentStatusCancelled {
		return nil, fmt.Errorf("appointment %s is already cancelled", id)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.AppointmentRepository().UpdateStatus(ctx, id, entity.AppointmentStatusCancelled); err != nil {
		return nil, err
	}

	// Release the slot so another patient can take it.
	if err := uow.SlotRepository().MarkFree(ctx, appointment.Date, appointment.Time, appointment.Service); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifyCancelled(ctx, appointment)

	return &dto.CancelAppointmentResponse{
		Id:     id,
		Status: entity.AppointmentStatusCancelled,
	}, nil
}

func (s *bookingService) notifyCancelled(ctx context.Context, a *entity.Appointment) {
	if s.eventPublisher != nil {
		evt := events.NewBookingCancelled(a.Id.String(), a.Service, a.Date, a.Time)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("booking", "failed to publish cancellation event", map[string]interface{}{
				"appointment_id": a.Id.String(),
				"error":          err.Error(),
			})
		}
	}

	if s.emailService != nil && s.staffEmail != "" {
		go func() {
			err := s.emailService.SendCancellationNotification(s.staffEmail, mailer.BookingDetails{
				PatientName:  a.Name,
				PatientPhone: a.Phone,
				Service:      a.Service,
				Date:         a.Date,
				Time:         a.Time,
			})
			if err != nil {
				s.log.Warn("booking", "failed to send cancellation notification", map[string]interface{}{
					"appointment_id": a.Id.String(),
					"error":          err.Error(),
				})
			}
		}()
	}
}
