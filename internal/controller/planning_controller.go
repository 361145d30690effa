package controller

import (
	"github.com/ArthurLoboLobo/projeto-estudos/internal/dto"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/pkg/serverutils"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlanningController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Revise(ctx *fiber.Ctx) error
	Undo(ctx *fiber.Ctx) error
	UpdateTopicStatus(ctx *fiber.Ctx) error
	GetCurrent(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	StartStudying(ctx *fiber.Ctx) error
}

type planningController struct {
	planningService service.IPlanningService
}

func NewPlanningController(planningService service.IPlanningService) IPlanningController {
	return &planningController{
		planningService: planningService,
	}
}

func (c *planningController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/plan/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/generate", c.Generate)
	h.Post("/revise", c.Revise)
	h.Put("/topic-status", c.UpdateTopicStatus)
	h.Get(":sessionId", c.GetCurrent)
	h.Get(":sessionId/history", c.GetHistory)
	h.Post(":sessionId/undo", c.Undo)
	h.Post(":sessionId/start", c.StartStudying)
}

func (c *planningController) Generate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.GeneratePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planningService.Generate(ctx.Context(), userId, req.SessionId, requestLanguage(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate plan", res))
}

func (c *planningController) Revise(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.RevisePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planningService.Revise(ctx.Context(), userId, &req, requestLanguage(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success revise plan", res))
}

func (c *planningController) Undo(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, _ := uuid.Parse(ctx.Params("sessionId"))

	res, err := c.planningService.Undo(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success undo plan", res))
}

func (c *planningController) UpdateTopicStatus(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.UpdateTopicStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planningService.UpdateTopicStatus(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update topic status", res))
}

func (c *planningController) GetCurrent(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, _ := uuid.Parse(ctx.Params("sessionId"))

	res, err := c.planningService.GetCurrent(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get plan", res))
}

func (c *planningController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, _ := uuid.Parse(ctx.Params("sessionId"))

	res, err := c.planningService.GetHistory(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get plan history", res))
}

func (c *planningController) StartStudying(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, _ := uuid.Parse(ctx.Params("sessionId"))

	res, err := c.planningService.StartStudying(ctx.Context(), userId, sessionId, requestLanguage(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success start studying", res))
}
