package controller

import (
	"ai-health-assistant-be/internal/dto"
	"ai-health-assistant-be/internal/pkg/serverutils"
	"ai-health-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRagController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	IngestDocument(ctx *fiber.Ctx) error
}

type ragController struct {
	ragService      service.IRagService
	documentService service.IDocumentService
}

func NewRagController(ragService service.IRagService, documentService service.IDocumentService) IRagController {
	return &ragController{
		ragService:      ragService,
		documentService: documentService,
	}
}

func (c *ragController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rag/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/ask", c.Ask)
	h.Get("/history/:patient_id", c.History)
	h.Post("/documents", c.IngestDocument)
}

func (c *ragController) Ask(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ragService.Ask(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}

func (c *ragController) History(ctx *fiber.Ctx) error {
	userId, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	patientId, err := uuidParam(ctx, "patient_id")
	if err != nil {
		return err
	}

	res, err := c.ragService.History(ctx.UserContext(), userId, patientId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get conversation history", res))
}

func (c *ragController) IngestDocument(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if ctx.QueryBool("async") {
		res, err := c.documentService.Enqueue(ctx.UserContext(), &req)
		if err != nil {
			return err
		}
		return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for ingestion", res))
	}

	res, err := c.documentService.Ingest(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Document ingested", res))
}
