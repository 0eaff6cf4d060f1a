package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cinedexbot/cinedex/internal/bot"
	"github.com/cinedexbot/cinedex/internal/catalog"
	"github.com/cinedexbot/cinedex/internal/config"
)

type stubStore struct {
	rows      [][]string
	appended  [][]string
	appendErr error
}

func (s *stubStore) ReadAll(context.Context) ([][]string, error) { return s.rows, nil }

func (s *stubStore) Append(_ context.Context, row []string) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, row)
	return nil
}

type stubMessenger struct {
	texts []string
}

func (m *stubMessenger) SendText(_ context.Context, _ int64, text string) error {
	m.texts = append(m.texts, text)
	return nil
}

func (m *stubMessenger) SendVideo(context.Context, int64, string, string) error    { return nil }
func (m *stubMessenger) SendDocument(context.Context, int64, string, string) error { return nil }

func newWebhookTest(store catalog.Store, messenger bot.Messenger, secret string) (*echo.Echo, *TelegramWebhookHandler) {
	cfg := config.Config{Telegram: config.TelegramConfig{WebhookSecret: secret}}
	handler := NewTelegramWebhookHandler(testLogger(), bot.NewOrchestrator(testLogger(), store, messenger), cfg)
	e := echo.New()
	handler.Register(e)
	return e, handler
}

func postWebhook(e *echo.Echo, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestWebhookAcknowledgesEmptyUpdate(t *testing.T) {
	t.Parallel()

	e, _ := newWebhookTest(&stubStore{}, &stubMessenger{}, "")
	rec := postWebhook(e, `{"update_id":1}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestWebhookRegistersCommand(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	messenger := &stubMessenger{}
	e, _ := newWebhookTest(store, messenger, "")

	body := `{"update_id":2,"message":{"message_id":5,"chat":{"id":7},"text":"add M1 https://example.com/x Alpha Beta"}}`
	rec := postWebhook(e, body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if len(store.appended) != 1 || store.appended[0][0] != "M1" {
		t.Fatalf("appended=%v", store.appended)
	}
	if len(messenger.texts) != 1 {
		t.Fatalf("texts=%v", messenger.texts)
	}
}

func TestWebhookStoreFailureMapsTo500(t *testing.T) {
	t.Parallel()

	store := &stubStore{appendErr: errors.New("sheet down")}
	e, _ := newWebhookTest(store, &stubMessenger{}, "")

	body := `{"update_id":3,"message":{"message_id":5,"chat":{"id":7},"text":"add M1 x"}}`
	rec := postWebhook(e, body, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestWebhookMalformedBody(t *testing.T) {
	t.Parallel()

	e, _ := newWebhookTest(&stubStore{}, &stubMessenger{}, "")
	rec := postWebhook(e, `{not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestWebhookSecretToken(t *testing.T) {
	t.Parallel()

	e, _ := newWebhookTest(&stubStore{}, &stubMessenger{}, "s3cret")

	rec := postWebhook(e, `{"update_id":4}`, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("missing secret: status=%d", rec.Code)
	}

	header := http.Header{}
	header.Set("X-Telegram-Bot-Api-Secret-Token", "wrong")
	rec = postWebhook(e, `{"update_id":4}`, header)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong secret: status=%d", rec.Code)
	}

	header.Set("X-Telegram-Bot-Api-Secret-Token", "s3cret")
	rec = postWebhook(e, `{"update_id":4}`, header)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid secret: status=%d", rec.Code)
	}
}
