package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger delivers replies to a chat. It abstracts the Telegram send API so
// the orchestrator can be exercised without network access.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendVideo(ctx context.Context, chatID int64, fileID, caption string) error
	SendDocument(ctx context.Context, chatID int64, fileID, caption string) error
}

// TelegramMessenger implements Messenger over the Telegram Bot API.
type TelegramMessenger struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramMessenger(bot *tgbotapi.BotAPI) *TelegramMessenger {
	return &TelegramMessenger{bot: bot}
}

func (m *TelegramMessenger) SendText(_ context.Context, chatID int64, text string) error {
	_, err := m.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (m *TelegramMessenger) SendVideo(_ context.Context, chatID int64, fileID, caption string) error {
	video := tgbotapi.NewVideo(chatID, tgbotapi.FileID(fileID))
	video.Caption = caption
	_, err := m.bot.Send(video)
	return err
}

func (m *TelegramMessenger) SendDocument(_ context.Context, chatID int64, fileID, caption string) error {
	document := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileID))
	document.Caption = caption
	_, err := m.bot.Send(document)
	return err
}
