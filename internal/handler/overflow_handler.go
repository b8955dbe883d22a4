package handler

import (
	"time"

	"go-floor-inventory/internal/service"
	"go-floor-inventory/pkg/paging"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type OverflowHandler struct {
	service service.OverflowService
	stats   service.OverflowStatsService
	actors  service.ActorResolver
	loc     *time.Location
}

func NewOverflowHandler(s service.OverflowService, stats service.OverflowStatsService, actors service.ActorResolver, loc *time.Location) *OverflowHandler {
	return &OverflowHandler{service: s, stats: stats, actors: actors, loc: loc}
}

// GET /api/v1/overflows
func (h *OverflowHandler) ListActive(c *fiber.Ctx) error {
	events, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": events})
}

// POST /api/v1/overflows
func (h *OverflowHandler) Record(c *fiber.Ctx) error {
	var input service.RecordOverflowInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor, err := h.actors.CurrentActor(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}

	event, err := h.service.RecordOverflow(c.UserContext(), &input, actor)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Overflow recorded", "data": event})
}

// DELETE /api/v1/overflows?product_number=&created_at=
// created_at must be the exact RFC 3339 timestamp returned when listing.
func (h *OverflowHandler) Delete(c *fiber.Ctx) error {
	productNumber := c.Query("product_number")
	if productNumber == "" {
		return c.Status(400).JSON(fiber.Map{"error": "product_number is required"})
	}
	createdAt, err := time.Parse(time.RFC3339Nano, c.Query("created_at"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "created_at must be an RFC 3339 timestamp"})
	}

	actor, err := h.actors.CurrentActor(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}

	if err := h.service.SoftDelete(c.UserContext(), productNumber, createdAt, actor); err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Overflow deleted"})
}

// GET /api/v1/overflows/stats?start_date=&end_date=&order=
// Dates default to today in the business time zone.
func (h *OverflowHandler) Stats(c *fiber.Ctx) error {
	today := time.Now().In(h.loc).Format(dateLayout)
	startDate, err := time.ParseInLocation(dateLayout, c.Query("start_date", today), h.loc)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	endDate, err := time.ParseInLocation(dateLayout, c.Query("end_date", today), h.loc)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "end_date must be YYYY-MM-DD"})
	}
	order := service.ParseSortOrder(c.Query("order"))

	stats, err := h.stats.ComputeStats(c.UserContext(), startDate, endDate)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"start_date": startDate.Format(dateLayout),
		"end_date":   endDate.Format(dateLayout),
		"order":      order,
		"data":       service.SortStats(stats, order),
	})
}

// GET /api/v1/overflows/:productNumber/history?page=
func (h *OverflowHandler) History(c *fiber.Ctx) error {
	details, err := h.stats.ComputeDetail(c.UserContext(), c.Params("productNumber"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(paging.Paginate(details, c.QueryInt("page", 0), service.DetailPageSize))
}
