package controller

import (
	"errors"

	"clinic-assistant-be/internal/dto"
	"clinic-assistant-be/internal/entity"
	"clinic-assistant-be/internal/pkg/serverutils"
	"clinic-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ListAppointments(ctx *fiber.Ctx) error
	ListSlots(ctx *fiber.Ctx) error
	CancelAppointment(ctx *fiber.Ctx) error
	TriggerIngest(ctx *fiber.Ctx) error
}

type adminController struct {
	bookingService service.IBookingService
	ingestService  service.IIngestService
}

func NewAdminController(bookingService service.IBookingService, ingestService service.IIngestService) IAdminController {
	return &adminController{
		bookingService: bookingService,
		ingestService:  ingestService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("appointments", c.ListAppointments)
	h.Get("slots", c.ListSlots)
	h.Post("appointments/:id/cancel", c.CancelAppointment)
	h.Post("ingest", c.TriggerIngest)
}

func (c *adminController) ListAppointments(ctx *fiber.Ctx) error {
	var req dto.ListAppointmentsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.bookingService.ListAppointments(ctx.Context(), req.Date)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list appointments", res))
}

func (c *adminController) ListSlots(ctx *fiber.Ctx) error {
	var req dto.ListSlotsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.bookingService.ListSlots(ctx.Context(), req.Date, req.Service)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list slots", res))
}

func (c *adminController) CancelAppointment(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid appointment id")
	}

	res, err := c.bookingService.CancelAppointment(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrAppointmentNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Appointment not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel appointment", res))
}

func (c *adminController) TriggerIngest(ctx *fiber.Ctx) error {
	queued, err := c.ingestService.IngestDirectory(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue corpus ingest", dto.IngestTriggerResponse{
		SourcesQueued: queued,
	}))
}
