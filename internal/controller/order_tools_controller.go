package controller

import (
	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/serverutils"
	"ai-helpdesk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOrderToolsController interface {
	RegisterRoutes(r fiber.Router)
	Route(ctx *fiber.Ctx) error
}

type orderToolsController struct {
	service service.IToolRouterService
}

func NewOrderToolsController(service service.IToolRouterService) IOrderToolsController {
	return &orderToolsController{service: service}
}

func (c *orderToolsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tools")
	h.Post("/route", c.Route)
}

// Route always answers 200: routing failures surface as a refusal outcome in
// the body, never as an HTTP error.
func (c *orderToolsController) Route(ctx *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.service.Route(ctx.Context(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success route request", res))
}
