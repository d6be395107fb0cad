package controller

import (
	"clinic-assistant-be/internal/dto"
	"clinic-assistant-be/internal/pkg/logger"
	"clinic-assistant-be/internal/pkg/serverutils"
	"clinic-assistant-be/internal/service"
	internalWS "clinic-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	hub              *internalWS.Hub
	logger           logger.ILogger
}

func NewAssistantController(assistantService service.IAssistantService, hub *internalWS.Hub, log logger.ILogger) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		hub:              hub,
		logger:           log,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("ask", c.Ask)
	h.Post("reset", c.Reset)
	h.Get("ws", c.ServeWs)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.assistantService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process message", res))
}

func (c *assistantController) Reset(ctx *fiber.Ctx) error {
	conversationId := ctx.Query("conversation_id")
	if conversationId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "conversation_id is required")
	}

	c.assistantService.Reset(ctx.Context(), conversationId)

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset conversation", nil))
}

// ServeWs upgrades the connection and binds it to one conversation. A
// missing conversation_id gets a fresh one so the browser can simply
// connect and start talking.
func (c *assistantController) ServeWs(ctx *fiber.Ctx) error {
	conversationId := ctx.Query("conversation_id")
	if conversationId == "" {
		conversationId = uuid.New().String()
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.logger.Info("AssistantController", "Starting WebSocket session", map[string]interface{}{"conversation_id": conversationId})
			internalWS.ServeWs(c.hub, conn, conversationId, c.assistantService)
			c.logger.Info("AssistantController", "WebSocket session ended", map[string]interface{}{"conversation_id": conversationId})
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
