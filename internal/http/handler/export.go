package handler

import (
	"github.com/gofiber/fiber/v2"

	"orderapi/internal/service"
)

// ExportOrders handles POST /orders/export. It snapshots all orders into
// a CSV object and returns a presigned download link.
// @Summary Export all orders as CSV
// @Tags orders
// @Produce json
// @Success 200 {object} model.OrderExport
// @Router /orders/export [post]
func ExportOrders(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ExportOrders(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
