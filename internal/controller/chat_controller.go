package controller

import (
	"bufio"
	"encoding/json"
	"fmt"

	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/pkg/logger"
	"ai-advisor-be/internal/pkg/serverutils"
	"ai-advisor-be/internal/service"
	"ai-advisor-be/pkg/advisor"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Stream(ctx *fiber.Ctx) error
	AppendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	logger  logger.ILogger
}

func NewChatController(service service.IChatService, log logger.ILogger) IChatController {
	return &chatController{service: service, logger: log}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("stream", c.Stream)
	h.Post("message", c.AppendMessage)
	h.Get("history/:topicId", c.GetHistory)
}

// Stream runs one conversational turn and delivers the output as
// server-sent events: one frame per fragment, "data: {json}\n\n".
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userCtx := ctx.UserContext()

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		emitted := 0
		sink := func(event advisor.OutputEvent) error {
			data, err := json.Marshal(event)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return err
			}
			emitted++
			return w.Flush()
		}

		if _, err := c.service.StreamTurn(userCtx, userId, &req, sink); err != nil {
			c.logger.Warn("ChatController", "turn ended with error", map[string]interface{}{
				"topic_id": req.TopicId, "error": err.Error(),
			})
			// In-stream failures already carried an error frame through the
			// sink; anything rejected before streaming still needs one.
			if emitted == 0 {
				_ = sink(advisor.OutputEvent{Content: err.Error(), Type: advisor.EventError})
			}
		}
	}))

	return nil
}

func (c *chatController) AppendMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.AppendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AppendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success append message", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	topicIdParam := ctx.Params("topicId")
	topicId, err := uuid.Parse(topicIdParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid topic id")
	}

	res, err := c.service.GetChatHistory(ctx.Context(), userId, topicId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
