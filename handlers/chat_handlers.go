package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"staffhub/api-gateway/internal/chatclient"
	"staffhub/api-gateway/utils"
)

// ChatCompletionRequest relays a conversation to the AI assistant.
type ChatCompletionRequest struct {
	Messages []chatclient.Message `json:"messages" validate:"required,min=1"`
}

// ChatCompletion forwards the conversation to the chat provider and returns
// the assistant's reply. The gateway keeps no chat history.
func (h *ApplicationHandler) ChatCompletion(c *fiber.Ctx) error {
	req := new(ChatCompletionRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}
	for _, message := range req.Messages {
		if message.Role == "" || message.Content == "" {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Each message needs a role and content")
		}
	}

	reply, err := h.Chat.Complete(c.Context(), req.Messages)
	if err != nil {
		h.Log.WithError(err).Error("Chat provider request failed")
		return utils.RespondWithError(c, fiber.StatusBadGateway, "Chat provider is unavailable")
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Chat completion successful", reply)
}
