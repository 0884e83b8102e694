package handlers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"

	"staffhub/api-gateway/internal/chatclient"
	"staffhub/api-gateway/internal/contracts"
	"staffhub/api-gateway/internal/smsprovider"
	"staffhub/api-gateway/internal/store"
	"staffhub/api-gateway/internal/tasks"
	"staffhub/api-gateway/internal/timetrack"
	"staffhub/api-gateway/middleware"
	"staffhub/api-gateway/utils"
)

// ChatClient defines the operations handlers expect from the AI chat
// provider. This allows for decoupling and easier testing.
type ChatClient interface {
	Complete(ctx context.Context, messages []chatclient.Message) (*chatclient.Reply, error)
}

// SMSProvider defines the operations handlers expect from the phone-number
// rental provider.
type SMSProvider interface {
	Provider() string
	RentNumber(ctx context.Context, country, service string) (*smsprovider.Rental, error)
	CancelRental(ctx context.Context, externalID string) error
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Log       *logrus.Logger
	DB        *store.Supabase
	Storage   *storage_go.Client
	TimeTrack *timetrack.Service
	Tasks     *tasks.Service
	Contracts *contracts.Service
	Chat      ChatClient
	SMS       SMSProvider
	Validate  *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(log *logrus.Logger, db *store.Supabase, storage *storage_go.Client, timeTrack *timetrack.Service, taskSvc *tasks.Service, contractSvc *contracts.Service, chat ChatClient, sms SMSProvider) *ApplicationHandler {
	return &ApplicationHandler{
		Log:       log,
		DB:        db,
		Storage:   storage,
		TimeTrack: timeTrack,
		Tasks:     taskSvc,
		Contracts: contractSvc,
		Chat:      chat,
		SMS:       sms,
		Validate:  validator.New(),
	}
}

// currentUserID returns the authenticated caller's id from Locals.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalUserID).(string)
	return id
}

// respondServiceError translates component errors into HTTP responses:
// missing entities are 404 (not 500), state conflicts 409, input problems
// 400, ownership 403, and everything else a logged 500.
func (h *ApplicationHandler) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return utils.RespondWithError(c, fiber.StatusNotFound, "Record not found")
	case errors.Is(err, tasks.ErrInvalidTransition), errors.Is(err, contracts.ErrAlreadySigned):
		return utils.RespondWithError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, tasks.ErrReasonRequired), errors.Is(err, tasks.ErrStepOutOfRange), errors.Is(err, contracts.ErrSignatureRequired):
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, tasks.ErrNotOwner), errors.Is(err, contracts.ErrNotOwner):
		return utils.RespondWithError(c, fiber.StatusForbidden, err.Error())
	}
	h.Log.WithError(err).Error("Unhandled service error")
	return utils.RespondWithError(c, fiber.StatusInternalServerError, err.Error())
}

// validateStruct runs validator on a request struct and responds with the
// formatted violations. Returns true when the request was rejected.
func (h *ApplicationHandler) validateStruct(c *fiber.Ctx, req interface{}) (rejected bool, respErr error) {
	if err := h.Validate.Struct(req); err != nil {
		return true, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"errors":  utils.FormatValidationErrors(err),
		})
	}
	return false, nil
}
