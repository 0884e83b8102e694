package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"staffhub/api-gateway/models"
	"staffhub/api-gateway/utils"
)

// RentPhoneNumberRequest rents a number for a country and service.
type RentPhoneNumberRequest struct {
	Country string `json:"country" validate:"required"`
	Service string `json:"service" validate:"required"`
}

func (h *ApplicationHandler) RentPhoneNumber(c *fiber.Ctx) error {
	req := new(RentPhoneNumberRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	rentedBy, err := uuid.Parse(currentUserID(c))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	rented, err := h.SMS.RentNumber(c.Context(), req.Country, req.Service)
	if err != nil {
		h.Log.WithError(err).Error("SMS provider rental failed")
		return utils.RespondWithError(c, fiber.StatusBadGateway, "Phone number provider is unavailable")
	}

	rental, err := h.DB.CreatePhoneRental(models.PhoneRental{
		Provider:    h.SMS.Provider(),
		ExternalID:  rented.ExternalID,
		PhoneNumber: rented.PhoneNumber,
		Country:     req.Country,
		Service:     req.Service,
		Status:      models.RentalActive,
		Cost:        rented.Cost,
		RentedBy:    rentedBy,
		ExpiresAt:   rented.ExpiresAt,
	})
	if err != nil {
		// The provider-side rental exists but we lost the record; cancel it
		// so it does not keep accruing cost.
		if cancelErr := h.SMS.CancelRental(c.Context(), rented.ExternalID); cancelErr != nil {
			h.Log.WithError(cancelErr).WithField("external_id", rented.ExternalID).
				Error("Failed to cancel orphaned provider rental")
		}
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusCreated, "Phone number rented successfully", rental)
}

// ListPhoneRentals returns all rentals. Active rentals past their expiry are
// marked expired on read; there is no background sweep.
func (h *ApplicationHandler) ListPhoneRentals(c *fiber.Ctx) error {
	rentals, err := h.DB.ListPhoneRentals()
	if err != nil {
		return h.respondServiceError(c, err)
	}

	now := time.Now()
	for i := range rentals {
		if !rentals[i].Expired(now) {
			continue
		}
		updated, err := h.DB.UpdatePhoneRental(rentals[i].ID.String(), map[string]interface{}{
			"status": models.RentalExpired,
		})
		if err != nil {
			h.Log.WithError(err).WithField("rental_id", rentals[i].ID.String()).
				Warn("Failed to mark phone rental expired")
			continue
		}
		rentals[i] = *updated
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Phone rentals retrieved successfully", rentals)
}

// CancelPhoneRental cancels an active rental with the provider and records
// the cancellation.
func (h *ApplicationHandler) CancelPhoneRental(c *fiber.Ctx) error {
	rental, err := h.DB.GetPhoneRental(c.Params("id"))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	if rental.Status != models.RentalActive {
		return utils.RespondWithError(c, fiber.StatusConflict, "Only active rentals can be canceled")
	}

	if err := h.SMS.CancelRental(c.Context(), rental.ExternalID); err != nil {
		h.Log.WithError(err).WithField("rental_id", rental.ID.String()).
			Error("SMS provider cancellation failed")
		return utils.RespondWithError(c, fiber.StatusBadGateway, "Phone number provider is unavailable")
	}

	updated, err := h.DB.UpdatePhoneRental(rental.ID.String(), map[string]interface{}{
		"status": models.RentalCanceled,
	})
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Phone rental canceled successfully", updated)
}
