package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"orderapi/internal/service"
)

// customerRequest is the JSON body for creating or updating a customer.
type customerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListCustomers handles GET /customers with limit & offset.
// @Summary List customers
// @Tags customers
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.CustomerListResult
// @Router /customers [get]
func ListCustomers(svc service.CustomerService) fiber.Handler {
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

// CreateCustomer handles POST /customers.
// @Summary Register a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param body body customerRequest true "customer payload"
// @Success 201 {object} model.Customer
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /customers [post]
func CreateCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req customerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		cust, err := svc.Create(c.UserContext(), req.Name, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
			case errors.Is(err, service.ErrEmailRequired):
				return writeError(c, fiber.StatusBadRequest, "EMAIL_REQUIRED", "email is required")
			case errors.Is(err, service.ErrEmailTaken):
				return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "email already registered")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(cust)
	}
}

// GetCustomer handles GET /customers/:id.
// @Summary Get a customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "customer id"
// @Success 200 {object} model.Customer
// @Failure 404 {object} errorPayload
// @Router /customers/{id} [get]
func GetCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		cust, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrCustomerNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "customer not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(cust)
	}
}

// UpdateCustomer handles PUT /customers/:id.
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "customer id"
// @Param body body customerRequest true "customer payload"
// @Success 200 {object} model.Customer
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /customers/{id} [put]
func UpdateCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req customerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		cust, err := svc.Update(c.UserContext(), id, req.Name, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
			case errors.Is(err, service.ErrEmailRequired):
				return writeError(c, fiber.StatusBadRequest, "EMAIL_REQUIRED", "email is required")
			case errors.Is(err, service.ErrCustomerNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "customer not found")
			case errors.Is(err, service.ErrEmailTaken):
				return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "email already registered")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(cust)
	}
}

// DeleteCustomer handles DELETE /customers/:id. Orders owned by the
// customer are removed with it.
// @Summary Delete a customer
// @Tags customers
// @Param id path string true "customer id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /customers/{id} [delete]
func DeleteCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrCustomerNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "customer not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
