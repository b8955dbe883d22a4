package handler

import (
	"go-floor-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	catalog service.CatalogService
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// GET /api/v1/products?q=&page=
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	page, err := h.catalog.Search(c.UserContext(), c.Query("q"), c.QueryInt("page", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// GET /api/v1/products/:productNumber
func (h *ProductHandler) Lookup(c *fiber.Ctx) error {
	product, err := h.catalog.Lookup(c.UserContext(), c.Params("productNumber"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}
