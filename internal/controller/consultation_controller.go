package controller

import (
	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/internal/pkg/serverutils"
	"ai-health-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConsultationController interface {
	RegisterRoutes(r fiber.Router)
	Consult(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Recommend(ctx *fiber.Ctx) error
}

type consultationController struct {
	service service.IConsultationService
}

func NewConsultationController(service service.IConsultationService) IConsultationController {
	return &consultationController{service: service}
}

func (c *consultationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/consult", c.Consult)
	h.Get("/consultations", c.GetAll)
	h.Post("/recommendation", c.Recommend)
}

func (c *consultationController) Consult(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ConsultRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Consult(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Consultation completed", res))
}

func (c *consultationController) GetAll(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get consultations", res))
}

func (c *consultationController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Recommend(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recommendation", res))
}
