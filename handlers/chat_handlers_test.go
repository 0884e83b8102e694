package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"staffhub/api-gateway/internal/chatclient"
)

type fakeChat struct {
	reply *chatclient.Reply
	err   error
	got   []chatclient.Message
}

func (f *fakeChat) Complete(ctx context.Context, messages []chatclient.Message) (*chatclient.Reply, error) {
	f.got = messages
	return f.reply, f.err
}

func newChatTestApp(chat ChatClient) *fiber.App {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	h := NewApplicationHandler(log, nil, nil, nil, nil, nil, chat, nil)

	app := fiber.New()
	app.Post("/chat", h.ChatCompletion)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestChatCompletion_RelaysConversation(t *testing.T) {
	chat := &fakeChat{reply: &chatclient.Reply{Content: "Hallo! Wie kann ich helfen?"}}
	app := newChatTestApp(chat)

	resp := postJSON(t, app, "/chat", `{"messages":[{"role":"user","content":"Hallo"}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var envelope struct {
		Status string           `json:"status"`
		Data   chatclient.Reply `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Status != "success" {
		t.Errorf("expected success status, got %q", envelope.Status)
	}
	if envelope.Data.Content != "Hallo! Wie kann ich helfen?" {
		t.Errorf("unexpected reply content %q", envelope.Data.Content)
	}
	if len(chat.got) != 1 || chat.got[0].Role != "user" {
		t.Errorf("provider did not receive the conversation: %+v", chat.got)
	}
}

func TestChatCompletion_RejectsEmptyConversation(t *testing.T) {
	app := newChatTestApp(&fakeChat{})

	resp := postJSON(t, app, "/chat", `{"messages":[]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChatCompletion_RejectsMessageWithoutRole(t *testing.T) {
	app := newChatTestApp(&fakeChat{})

	resp := postJSON(t, app, "/chat", `{"messages":[{"content":"Hallo"}]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChatCompletion_ProviderFailureIsBadGateway(t *testing.T) {
	app := newChatTestApp(&fakeChat{err: errors.New("upstream down")})

	resp := postJSON(t, app, "/chat", `{"messages":[{"role":"user","content":"Hallo"}]}`)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}
