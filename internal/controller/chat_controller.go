package controller

import (
	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/serverutils"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetBySession(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetByTopic(ctx *fiber.Ctx) error
	GetReviewChat(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GenerateWelcome(ctx *fiber.Ctx) error
	ClearMessages(ctx *fiber.Ctx) error
	UndoMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/session/:sessionId", c.GetBySession)
	h.Get("/session/:sessionId/review", c.GetReviewChat)
	h.Get("/topic/:topicId", c.GetByTopic)
	h.Post("/message", c.SendMessage)
	h.Get(":id", c.Show)
	h.Get(":id/messages", c.GetMessages)
	h.Post(":id/welcome", c.GenerateWelcome)
	h.Post(":id/undo", c.UndoMessage)
	h.Delete(":id/messages", c.ClearMessages)
}

func (c *chatController) GetBySession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, _ := uuid.Parse(ctx.Params("sessionId"))

	res, err := c.chatService.GetBySession(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chats", res))
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.chatService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show chat", res))
}

func (c *chatController) GetByTopic(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	topicId, _ := uuid.Parse(ctx.Params("topicId"))

	res, err := c.chatService.GetByTopic(ctx.Context(), userId, topicId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get topic chat", res))
}

func (c *chatController) GetReviewChat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, _ := uuid.Parse(ctx.Params("sessionId"))

	res, err := c.chatService.GetReviewChat(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get review chat", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.chatService.GetMessages(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), userId, &req, requestLanguage(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) GenerateWelcome(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.chatService.GenerateWelcome(ctx.Context(), userId, id, requestLanguage(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate welcome", res))
}

func (c *chatController) ClearMessages(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.chatService.ClearMessages(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear messages", nil))
}

func (c *chatController) UndoMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.chatService.UndoMessage(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success undo message", res))
}
