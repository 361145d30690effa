package controller

import (
	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/serverutils"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITopicController interface {
	RegisterRoutes(r fiber.Router)
	GetBySession(ctx *fiber.Ctx) error
	UpdateCompletion(ctx *fiber.Ctx) error
}

type topicController struct {
	topicService service.ITopicService
}

func NewTopicController(topicService service.ITopicService) ITopicController {
	return &topicController{
		topicService: topicService,
	}
}

func (c *topicController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/topic/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/session/:sessionId", c.GetBySession)
	h.Put(":id/completion", c.UpdateCompletion)
}

func (c *topicController) GetBySession(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, _ := uuid.Parse(ctx.Params("sessionId"))

	res, err := c.topicService.GetBySession(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get topics", res))
}

func (c *topicController) UpdateCompletion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateTopicRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.topicService.UpdateCompletion(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update topic", res))
}
