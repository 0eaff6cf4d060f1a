package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cinedexbot/cinedex/internal/bot"
	"github.com/cinedexbot/cinedex/internal/config"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// TelegramWebhookHandler receives Telegram webhook deliveries and hands the
// decoded update to the orchestrator.
type TelegramWebhookHandler struct {
	orchestrator *bot.Orchestrator
	secret       string
	logger       *slog.Logger
}

func NewTelegramWebhookHandler(log *slog.Logger, orchestrator *bot.Orchestrator, cfg config.Config) *TelegramWebhookHandler {
	return &TelegramWebhookHandler{
		orchestrator: orchestrator,
		secret:       cfg.Telegram.WebhookSecret,
		logger:       log.With(slog.String("handler", "telegram_webhook")),
	}
}

func (h *TelegramWebhookHandler) Register(e *echo.Echo) {
	e.POST("/telegram/webhook", h.Handle)
}

// Handle acknowledges every delivery with 200 unless the store was
// unavailable; Telegram retries non-2xx deliveries, and a retried delivery is
// safe to re-handle only when nothing was persisted.
func (h *TelegramWebhookHandler) Handle(c echo.Context) error {
	if h.secret != "" && c.Request().Header.Get(secretTokenHeader) != h.secret {
		return echo.NewHTTPError(http.StatusForbidden, "invalid secret token")
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(c.Request().Body).Decode(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed update")
	}

	log := h.logger.With(
		slog.String("delivery_id", uuid.NewString()),
		slog.Int("update_id", update.UpdateID),
	)
	if err := h.orchestrator.Handle(c.Request().Context(), update); err != nil {
		log.Error("handle update failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "handling failed")
	}
	log.Debug("update handled")
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
