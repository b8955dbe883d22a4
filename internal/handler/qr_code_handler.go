package handler

import (
	"go-floor-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type QRCodeHandler struct {
	service service.QRCodeService
}

func NewQRCodeHandler(s service.QRCodeService) *QRCodeHandler {
	return &QRCodeHandler{service: s}
}

// GET /api/v1/qr-codes?search=&order=
func (h *QRCodeHandler) List(c *fiber.Ctx) error {
	codes, err := h.service.List(c.UserContext(), c.Query("search"), service.ParseSortOrder(c.Query("order")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": codes})
}
