package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"staffhub/api-gateway/models"
	"staffhub/api-gateway/utils"
)

// CreateTaskTemplateRequest defines the admin payload for a new template.
type CreateTaskTemplateRequest struct {
	Title          string            `json:"title" validate:"required"`
	Description    *string           `json:"description,omitempty"`
	Steps          []models.TaskStep `json:"steps" validate:"required,min=1"`
	EstimatedHours *float64          `json:"estimated_hours,omitempty" validate:"omitempty,gt=0"`
	PaymentAmount  *float64          `json:"payment_amount,omitempty" validate:"omitempty,gt=0"`
	Priority       string            `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func (h *ApplicationHandler) CreateTaskTemplate(c *fiber.Ctx) error {
	req := new(CreateTaskTemplateRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse template JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	if req.Priority == "" {
		req.Priority = "medium"
	}
	fields := map[string]interface{}{
		"title":    req.Title,
		"steps":    req.Steps,
		"priority": req.Priority,
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.EstimatedHours != nil {
		fields["estimated_hours"] = *req.EstimatedHours
	}
	if req.PaymentAmount != nil {
		fields["payment_amount"] = *req.PaymentAmount
	}

	template, err := h.DB.CreateTaskTemplate(fields)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusCreated, "Task template created successfully", template)
}

func (h *ApplicationHandler) ListTaskTemplates(c *fiber.Ctx) error {
	templates, err := h.DB.ListTaskTemplates()
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task templates retrieved successfully", templates)
}

func (h *ApplicationHandler) GetTaskTemplate(c *fiber.Ctx) error {
	template, err := h.DB.GetTaskTemplate(c.Params("id"))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task template retrieved successfully", template)
}

// UpdateTaskTemplate applies a partial update. Only known fields are
// accepted; type mismatches are rejected per field.
func (h *ApplicationHandler) UpdateTaskTemplate(c *fiber.Ctx) error {
	templateID := c.Params("id")

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	fields := make(map[string]interface{})
	for _, key := range []string{"title", "description", "priority"} {
		if value, exists := payload[key]; exists {
			if value == nil && key == "description" {
				fields[key] = nil
				continue
			}
			str, ok := value.(string)
			if !ok {
				return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("'%s' field must be a string", key))
			}
			fields[key] = str
		}
	}
	for _, key := range []string{"estimated_hours", "payment_amount"} {
		if value, exists := payload[key]; exists {
			if value == nil {
				fields[key] = nil
				continue
			}
			num, ok := value.(float64)
			if !ok {
				return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("'%s' field must be a number or null", key))
			}
			fields[key] = num
		}
	}
	if steps, exists := payload["steps"]; exists {
		fields["steps"] = steps
	}

	if len(fields) == 0 {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "No updatable fields provided")
	}

	template, err := h.DB.UpdateTaskTemplate(templateID, fields)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task template updated successfully", template)
}

func (h *ApplicationHandler) DeleteTaskTemplate(c *fiber.Ctx) error {
	templateID := c.Params("id")
	if err := h.DB.DeleteTaskTemplate(templateID); err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, fmt.Sprintf("Task template %s deleted", templateID), nil)
}
