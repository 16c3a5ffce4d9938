package controller

import (
	"errors"
	"io"
	"strconv"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/serverutils"
	"ai-helpdesk-be/internal/repository/predictionlog"
	"ai-helpdesk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultRecordsLimit = 50

type IReceiptController interface {
	RegisterRoutes(r fiber.Router)
	Extract(ctx *fiber.Ctx) error
	Records(ctx *fiber.Ctx) error
}

type receiptController struct {
	service service.IReceiptService
	log     *predictionlog.Log
}

func NewReceiptController(service service.IReceiptService, log *predictionlog.Log) IReceiptController {
	return &receiptController{service: service, log: log}
}

func (c *receiptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/receipts")
	h.Post("/extract", c.Extract)
	h.Get("/records", c.Records)
}

func (c *receiptController) Extract(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Image file is required"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	image, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	res, err := c.service.Extract(ctx.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), image)
	if err != nil {
		if errors.Is(err, service.ErrNoStructuredResult) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
		}
		if errors.Is(err, service.ErrUpstream) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract receipt", res))
}

func (c *receiptController) Records(ctx *fiber.Ctx) error {
	limit := defaultRecordsLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "limit must be a positive integer"))
		}
		limit = parsed
	}

	records, err := c.log.Recent(limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get receipt records", dto.ReceiptRecordsResponse{Records: records}))
}
