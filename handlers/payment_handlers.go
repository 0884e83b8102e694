package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"staffhub/api-gateway/internal/store"
	"staffhub/api-gateway/models"
	"staffhub/api-gateway/utils"
)

// GetMyBalance returns the caller's worker balance. A worker with no
// completed per-task work yet gets a zero balance, not an error.
func (h *ApplicationHandler) GetMyBalance(c *fiber.Ctx) error {
	userID := currentUserID(c)
	balance, err := h.DB.GetWorkerBalance(userID)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	if balance == nil {
		workerID, parseErr := uuid.Parse(userID)
		if parseErr != nil {
			return utils.RespondWithError(c, fiber.StatusUnauthorized, "Authentication required")
		}
		balance = &models.WorkerBalance{WorkerID: workerID}
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Balance retrieved successfully", balance)
}

// CreatePayoutRequestRequest asks for part of the pending balance.
type CreatePayoutRequestRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Notes  *string `json:"notes,omitempty"`
}

func (h *ApplicationHandler) CreatePayoutRequest(c *fiber.Ctx) error {
	req := new(CreatePayoutRequestRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	userID := currentUserID(c)
	balance, err := h.DB.GetWorkerBalance(userID)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	if balance == nil || req.Amount > balance.Available() {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Requested amount exceeds the available balance")
	}

	payout, err := h.DB.CreatePayoutRequest(userID, req.Amount, req.Notes)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusCreated, "Payout request created successfully", payout)
}

func (h *ApplicationHandler) ListMyPayoutRequests(c *fiber.Ctx) error {
	payouts, err := h.DB.ListPayoutRequests(store.PayoutFilter{
		WorkerID: currentUserID(c),
		Status:   c.Query("status"),
	})
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Payout requests retrieved successfully", payouts)
}

// ListPayoutRequests is the admin view, filterable by status.
func (h *ApplicationHandler) ListPayoutRequests(c *fiber.Ctx) error {
	payouts, err := h.DB.ListPayoutRequests(store.PayoutFilter{
		Status: c.Query("status"),
	})
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Payout requests retrieved successfully", payouts)
}

// ProcessPayoutRequestRequest records the admin decision on a payout.
type ProcessPayoutRequestRequest struct {
	Action string  `json:"action" validate:"required,oneof=approve reject paid"`
	Notes  *string `json:"notes,omitempty"`
}

// ProcessPayoutRequest moves a payout through pending -> approved/rejected
// -> paid. Marking as paid also settles the worker balance.
func (h *ApplicationHandler) ProcessPayoutRequest(c *fiber.Ctx) error {
	req := new(ProcessPayoutRequestRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	payout, err := h.DB.GetPayoutRequest(c.Params("id"))
	if err != nil {
		return h.respondServiceError(c, err)
	}

	var next string
	switch req.Action {
	case "approve":
		if payout.Status != models.PayoutPending {
			return utils.RespondWithError(c, fiber.StatusConflict, "Only pending payout requests can be approved")
		}
		next = models.PayoutApproved
	case "reject":
		if payout.Status != models.PayoutPending {
			return utils.RespondWithError(c, fiber.StatusConflict, "Only pending payout requests can be rejected")
		}
		next = models.PayoutRejected
	case "paid":
		if payout.Status != models.PayoutApproved {
			return utils.RespondWithError(c, fiber.StatusConflict, "Only approved payout requests can be marked as paid")
		}
		next = models.PayoutPaid
	}

	fields := map[string]interface{}{
		"status":       next,
		"processed_by": currentUserID(c),
		"processed_at": time.Now(),
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	updated, err := h.DB.UpdatePayoutRequest(payout.ID.String(), fields)
	if err != nil {
		return h.respondServiceError(c, err)
	}

	if next == models.PayoutPaid {
		if err := h.DB.SettleWorkerBalance(payout.WorkerID.String(), payout.Amount); err != nil {
			// The payout record is already paid; log so the balance can be
			// reconciled manually.
			h.Log.WithError(err).WithFields(map[string]interface{}{
				"payout_request_id": payout.ID.String(),
				"worker_id":         payout.WorkerID.String(),
			}).Error("Failed to settle worker balance after payout")
		}
	}

	return utils.RespondWithData(c, fiber.StatusOK, "Payout request processed successfully", updated)
}
