package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"staffhub/api-gateway/config"
	"staffhub/api-gateway/internal/contracts"
	"staffhub/api-gateway/models"
	"staffhub/api-gateway/utils"
)

// CreateContractRequest creates a reusable contract template.
type CreateContractRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (h *ApplicationHandler) CreateContract(c *fiber.Ctx) error {
	req := new(CreateContractRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	contract, err := h.DB.CreateContract(req.Title, req.Content)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusCreated, "Contract created successfully", contract)
}

func (h *ApplicationHandler) ListContracts(c *fiber.Ctx) error {
	list, err := h.DB.ListContracts()
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Contracts retrieved successfully", list)
}

// AssignContractRequest binds a contract to a user for signing.
type AssignContractRequest struct {
	ContractID string `json:"contract_id" validate:"required,uuid"`
	UserID     string `json:"user_id" validate:"required,uuid"`
}

func (h *ApplicationHandler) AssignContract(c *fiber.Ctx) error {
	req := new(AssignContractRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	if _, err := h.DB.GetContract(req.ContractID); err != nil {
		return h.respondServiceError(c, err)
	}
	if _, err := h.DB.GetProfile(req.UserID); err != nil {
		return h.respondServiceError(c, err)
	}

	assignment, err := h.DB.CreateContractAssignment(req.ContractID, req.UserID)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusCreated, "Contract assigned successfully", assignment)
}

// ListMyContracts returns the caller's contract assignments.
func (h *ApplicationHandler) ListMyContracts(c *fiber.Ctx) error {
	list, err := h.DB.ListContractAssignmentsForUser(currentUserID(c))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Contract assignments retrieved successfully", list)
}

// GetContractAssignment returns an assignment together with the contract
// body rendered for its user. Visible to the owner and to admins.
func (h *ApplicationHandler) GetContractAssignment(c *fiber.Ctx) error {
	assignment, profile, err := h.loadContractAssignment(c)
	if err != nil {
		return err
	}

	rendered := ""
	if assignment.Contract != nil {
		vars := contracts.ProfileVariables(profile, config.AppSettings.CompanyName, config.AppSettings.CompanyAddress, time.Now())
		rendered = contracts.Substitute(assignment.Contract.Content, vars)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Contract assignment retrieved successfully", fiber.Map{
		"assignment":       assignment,
		"rendered_content": rendered,
	})
}

// SignContractRequest carries the drawn signature as a data URL.
type SignContractRequest struct {
	SignatureData string `json:"signature_data" validate:"required"`
}

func (h *ApplicationHandler) SignContract(c *fiber.Ctx) error {
	req := new(SignContractRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	signed, err := h.Contracts.Sign(c.Params("id"), currentUserID(c), req.SignatureData)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Contract signed successfully", signed)
}

// GetContractDocument serves the contract rendered as an HTML page, for
// printing or download. Visible to the owner and to admins.
func (h *ApplicationHandler) GetContractDocument(c *fiber.Ctx) error {
	assignment, profile, err := h.loadContractAssignment(c)
	if err != nil {
		return err
	}
	if assignment.Contract == nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Contract not found for this assignment")
	}

	binding := contracts.DocumentBinding(assignment, profile, config.AppSettings.CompanyName, config.AppSettings.CompanyAddress)
	return c.Render("contract", binding)
}

// loadContractAssignment fetches the assignment plus its user's profile and
// enforces the owner-or-admin rule.
func (h *ApplicationHandler) loadContractAssignment(c *fiber.Ctx) (*models.ContractAssignment, *models.Profile, error) {
	assignment, err := h.DB.GetContractAssignment(c.Params("id"))
	if err != nil {
		return nil, nil, h.respondServiceError(c, err)
	}

	callerID := currentUserID(c)
	if assignment.UserID.String() != callerID {
		caller, err := h.DB.GetProfile(callerID)
		if err != nil || caller.Role != models.RoleAdmin {
			return nil, nil, utils.RespondWithError(c, fiber.StatusForbidden, "You do not have permission to access this contract")
		}
	}

	profile, err := h.DB.GetProfile(assignment.UserID.String())
	if err != nil {
		return nil, nil, h.respondServiceError(c, err)
	}
	return assignment, profile, nil
}
