package handler

import (
	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockRequestHandler struct {
	service service.StockRequestService
	actors  service.ActorResolver
}

func NewStockRequestHandler(s service.StockRequestService, actors service.ActorResolver) *StockRequestHandler {
	return &StockRequestHandler{service: s, actors: actors}
}

type CreateStockRequestRequest struct {
	ProductNumber string `json:"product_number"`
}

type AnswerStockRequestRequest struct {
	StockQuantity *int `json:"stock_quantity"`
}

// GET /api/v1/stock-requests
func (h *StockRequestHandler) ListActive(c *fiber.Ctx) error {
	requests, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}

	data := make([]model.StockRequestResponse, 0, len(requests))
	for i := range requests {
		data = append(data, requests[i].ToResponse())
	}
	return c.JSON(fiber.Map{"data": data})
}

// POST /api/v1/stock-requests
func (h *StockRequestHandler) Create(c *fiber.Ctx) error {
	var req CreateStockRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor, err := h.actors.CurrentActor(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}

	created, err := h.service.CreateRequest(c.UserContext(), req.ProductNumber, actor)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock request created", "data": created.ToResponse()})
}

// PUT /api/v1/stock-requests/:id/answer
func (h *StockRequestHandler) Answer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock request ID"})
	}

	var req AnswerStockRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.StockQuantity == nil {
		return c.Status(400).JSON(fiber.Map{"error": "stock_quantity is required"})
	}

	answered, err := h.service.AnswerRequest(c.UserContext(), uint(id), *req.StockQuantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Stock request answered", "data": answered.ToResponse()})
}

// DELETE /api/v1/stock-requests/:id
func (h *StockRequestHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock request ID"})
	}

	if err := h.service.DeleteRequest(c.UserContext(), uint(id)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Stock request deleted"})
}
