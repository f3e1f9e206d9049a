package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"orderapi/internal/service"
)

// orderRequest is the JSON body for creating or updating an order.
type orderRequest struct {
	CustomerID string `json:"customer_id"`
	Product    string `json:"product"`
	Quantity   int    `json:"quantity"`
}

// ListOrders handles GET /orders with limit & offset.
// @Summary List orders
// @Tags orders
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.OrderListResult
// @Router /orders [get]
func ListOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ListCustomerOrders handles GET /customers/:id/orders.
// @Summary List the orders of one customer
// @Tags orders
// @Produce json
// @Param id path string true "customer id"
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.OrderListResult
// @Failure 404 {object} errorPayload
// @Router /customers/{id}/orders [get]
func ListCustomerOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListByCustomer(c.UserContext(), id, limit, offset)
		if err != nil {
			if errors.Is(err, service.ErrCustomerNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "customer not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// CreateOrder handles POST /orders. The referenced customer must exist.
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Param body body orderRequest true "order payload"
// @Success 201 {object} model.Order
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /orders [post]
func CreateOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req orderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.CustomerID != "" {
			if _, err := uuid.Parse(req.CustomerID); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_CUSTOMER_ID", "invalid customer_id format")
			}
		}

		order, err := svc.Create(c.UserContext(), req.CustomerID, req.Product, req.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "CUSTOMER_ID_REQUIRED", "customer_id is required")
			case errors.Is(err, service.ErrProductRequired):
				return writeError(c, fiber.StatusBadRequest, "PRODUCT_REQUIRED", "product is required")
			case errors.Is(err, service.ErrQuantityInvalid):
				return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_QUANTITY", "quantity must be positive")
			case errors.Is(err, service.ErrCustomerNotFound):
				return writeError(c, fiber.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// GetOrder handles GET /orders/:id.
// @Summary Get an order by ID
// @Tags orders
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} model.Order
// @Failure 404 {object} errorPayload
// @Router /orders/{id} [get]
func GetOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		order, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(order)
	}
}

// UpdateOrder handles PUT /orders/:id.
// @Summary Update an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param body body orderRequest true "order payload"
// @Success 200 {object} model.Order
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /orders/{id} [put]
func UpdateOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req orderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.CustomerID != "" {
			if _, err := uuid.Parse(req.CustomerID); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_CUSTOMER_ID", "invalid customer_id format")
			}
		}

		order, err := svc.Update(c.UserContext(), id, req.CustomerID, req.Product, req.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "CUSTOMER_ID_REQUIRED", "customer_id is required")
			case errors.Is(err, service.ErrProductRequired):
				return writeError(c, fiber.StatusBadRequest, "PRODUCT_REQUIRED", "product is required")
			case errors.Is(err, service.ErrQuantityInvalid):
				return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_QUANTITY", "quantity must be positive")
			case errors.Is(err, service.ErrOrderNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			case errors.Is(err, service.ErrCustomerNotFound):
				return writeError(c, fiber.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(order)
	}
}

// DeleteOrder handles DELETE /orders/:id.
// @Summary Delete an order
// @Tags orders
// @Param id path string true "order id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /orders/{id} [delete]
func DeleteOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "order not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
