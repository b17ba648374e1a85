package investments

import (
	"networth-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/investments
func (h *Handlers) List(c *fiber.Ctx) error {
	data, errMsg, code := h.Service.List(c.Context())
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.Success(c, "Investments fetched successfully", data, nil)
}

// POST /api/v1/investments
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	data, errMsg, code := h.Service.Create(c.Context(), in)
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.SuccessCreated(c, "Investment created successfully", data, nil)
}

// PUT /api/v1/investments/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid investment id", 400, nil)
	}
	var in UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	data, errMsg, code := h.Service.Update(c.Context(), id, in)
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.Success(c, "Investment updated successfully", data, nil)
}

// DELETE /api/v1/investments/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid investment id", 400, nil)
	}
	errMsg, code := h.Service.Delete(c.Context(), id)
	if errMsg != "" {
		return response.Error(c, errMsg, code, nil)
	}
	return response.Success(c, "Investment deleted successfully", nil, nil)
}
