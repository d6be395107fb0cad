package service

import (
	"context"
	"time"

	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/pkg/logger"
	"clinic-assistant-be/internal/pkg/mailer"
	"clinic-assistant-be/internal/repository/specification"
	"clinic-assistant-be/internal/repository/unitofwork"
	"clinic-assistant-be/pkg/dialog"
	"clinic-assistant-be/pkg/events"
	pktNats "clinic-assistant-be/pkg/nats"

	"github.com/google/uuid"
)

// bookingGateway backs the dialogue engine with the slot and
// appointment tables. Booking claims the slot and inserts the
// appointment in one transaction so two conversations can never take
// the same slot.
type bookingGateway struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	staffEmail     string
	log            logger.ILogger
}

func NewBookingGateway(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	staffEmail string,
	log logger.ILogger,
) dialog.BookingGateway {
	return &bookingGateway{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		staffEmail:     staffEmail,
		log:            log,
	}
}

func (g *bookingGateway) OpenSlots(ctx context.Context, date, service string) ([]dialog.SlotOption, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	slots, err := uow.SlotRepository().FindAll(ctx,
		specification.ByDate{Date: date},
		specification.ByService{Service: service},
		specification.UnbookedOnly{},
		specification.OrderBy{Field: "time"},
	)
	if err != nil {
		return nil, err
	}

	options := make([]dialog.SlotOption, 0, len(slots))
	for _, s := range slots {
		options = append(options, dialog.SlotOption{
			Date:    s.Date,
			Time:    s.Time,
			Service: s.Service,
		})
	}
	return options, nil
}

func (g *bookingGateway) Book(ctx context.Context, req *dialog.BookingRequest) (string, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	defer uow.Rollback()

	if err := uow.SlotRepository().MarkBooked(ctx, req.Date, req.Time, req.Service); err != nil {
		return "", err
	}

	appointment := &entity.Appointment{
		Id:        uuid.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Service:   req.Service,
		Date:      req.Date,
		Time:      req.Time,
		Status:    entity.AppointmentStatusConfirmed,
		RoomId:    req.RoomId,
		CreatedAt: time.Now(),
	}
	if err := uow.AppointmentRepository().Create(ctx, appointment); err != nil {
		return "", err
	}

	if err := uow.Commit(); err != nil {
		return "", err
	}

	g.notifyBooked(ctx, appointment)

	return appointment.Id.String(), nil
}

// notifyBooked runs the side channels after the transaction committed.
// A failed mail or event never fails the booking itself.
func (g *bookingGateway) notifyBooked(ctx context.Context, a *entity.Appointment) {
	if g.eventPublisher != nil {
		evt := events.NewBookingConfirmed(a.Id.String(), a.Service, a.Date, a.Time, a.RoomId)
		if err := g.eventPublisher.Publish(ctx, evt); err != nil {
			g.log.Warn("booking", "failed to publish booking event", map[string]interface{}{
				"appointment_id": a.Id.String(),
				"error":          err.Error(),
			})
		}
	}

	if g.emailService != nil && g.staffEmail != "" {
		go func() {
			err := g.emailService.SendBookingNotification(g.staffEmail, mailer.BookingDetails{
				PatientName:  a.Name,
				PatientPhone: a.Phone,
				Service:      a.Service,
				Date:         a.Date,
				Time:         a.Time,
			})
			if err != nil {
				g.log.Warn("booking", "failed to send staff notification", map[string]interface{}{
					"appointment_id": a.Id.String(),
					"error":          err.Error(),
				})
			}
		}()
	}
}
