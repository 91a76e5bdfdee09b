package controller

import (
	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/internal/pkg/serverutils"
	"ai-health-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProgressController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	GetByConsultation(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
}

type progressController struct {
	service service.IProgressService
}

func NewProgressController(service service.IProgressService) IProgressController {
	return &progressController{service: service}
}

func (c *progressController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/progress/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/entry", c.Submit)
	h.Get("/entries/:consultation_id", c.GetByConsultation)
	h.Get("/summary", c.Summary)
}

func (c *progressController) Submit(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitProgressRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Progress entry saved", res))
}

func (c *progressController) GetByConsultation(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	consultationId, err := uuidParam(ctx, "consultation_id")
	if err != nil {
		return err
	}

	res, err := c.service.GetByConsultation(ctx.UserContext(), userId, consultationId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get progress entries", res))
}

func (c *progressController) Summary(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Summary(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get progress summary", res))
}
