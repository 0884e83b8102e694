package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"staffhub/api-gateway/config"
	"staffhub/api-gateway/utils"
)

// ListEmployees returns all employee profiles for the admin views.
func (h *ApplicationHandler) ListEmployees(c *fiber.Ctx) error {
	profiles, err := h.DB.ListProfiles(c.Query("role"))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Employees retrieved successfully", profiles)
}

func (h *ApplicationHandler) GetEmployee(c *fiber.Ctx) error {
	profile, err := h.DB.GetProfile(c.Params("id"))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Employee retrieved successfully", profile)
}

// GetMyProfile returns the authenticated caller's own profile.
func (h *ApplicationHandler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := h.DB.GetProfile(currentUserID(c))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Profile retrieved successfully", profile)
}

// GetKycDocumentURL returns a short-lived signed URL for the employee's
// uploaded identity document so admins can review it.
func (h *ApplicationHandler) GetKycDocumentURL(c *fiber.Ctx) error {
	profile, err := h.DB.GetProfile(c.Params("id"))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	if profile.KycDocument == nil || *profile.KycDocument == "" {
		return utils.RespondWithError(c, fiber.StatusNotFound, "No KYC document uploaded for this employee")
	}

	signed, err := h.Storage.CreateSignedUrl(config.AppSettings.KycBucket, *profile.KycDocument, 3600)
	if err != nil {
		h.Log.WithError(err).WithField("employee_id", profile.ID.String()).
			Error("Failed to sign KYC document URL")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not generate document URL")
	}
	return utils.RespondWithData(c, fiber.StatusOK, "KYC document URL generated", fiber.Map{
		"url": signed.SignedURL,
	})
}

// UpdateKycStatusRequest sets the verification outcome for an employee.
type UpdateKycStatusRequest struct {
	KycStatus string `json:"kyc_status" validate:"required,oneof=pending approved rejected"`
}

func (h *ApplicationHandler) UpdateKycStatus(c *fiber.Ctx) error {
	req := new(UpdateKycStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	profile, err := h.DB.UpdateProfile(c.Params("id"), map[string]interface{}{
		"kyc_status": req.KycStatus,
	})
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "KYC status updated successfully", profile)
}

// UpdatePaymentModeRequest switches an employee between contract-based pay
// and per-task compensation.
type UpdatePaymentModeRequest struct {
	PaymentMode string `json:"payment_mode" validate:"required,oneof=vertragsbasis verguetung"`
}

func (h *ApplicationHandler) UpdatePaymentMode(c *fiber.Ctx) error {
	req := new(UpdatePaymentModeRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	profile, err := h.DB.UpdateProfile(c.Params("id"), map[string]interface{}{
		"payment_mode": req.PaymentMode,
	})
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Payment mode updated successfully", profile)
}
