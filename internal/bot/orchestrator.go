package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/cinedexbot/cinedex/internal/catalog"
)

const (
	greetingReply = "Send /start <MovieID>"
	notFoundReply = "❌ Movie Not Found!"
)

// Orchestrator turns one inbound update into at most one catalog mutation and
// one reply. It holds no per-request state; concurrent updates only share the
// external store.
type Orchestrator struct {
	store     catalog.Store
	messenger Messenger
	logger    *slog.Logger
}

func NewOrchestrator(log *slog.Logger, store catalog.Store, messenger Messenger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		store:     store,
		messenger: messenger,
		logger:    log.With(slog.String("component", "orchestrator")),
	}
}

// Handle processes one webhook delivery. A non-nil error means the store was
// unavailable and the delivery should be acknowledged as failed; reply-send
// failures are logged and swallowed because any catalog mutation has already
// completed by the time the reply goes out.
func (o *Orchestrator) Handle(ctx context.Context, update tgbotapi.Update) error {
	intent := Classify(update)
	switch intent.Kind {
	case IntentRegisterAuto:
		entry := catalog.BuildAutoEntry(intent.Auto)
		if err := o.store.Append(ctx, entry.Row()); err != nil {
			return fmt.Errorf("append auto entry: %w", err)
		}
		confirmation := fmt.Sprintf("✅ Movie Added Automatically!\nID: %s\nName: %s", entry.ID, entry.Name)
		o.reply(ctx, intent.ChatID, confirmation)
		return nil

	case IntentRegisterManual:
		entry := catalog.BuildManualEntry(intent.Tokens)
		if err := o.store.Append(ctx, entry.Row()); err != nil {
			return fmt.Errorf("append manual entry: %w", err)
		}
		confirmation := fmt.Sprintf("✅ Movie Added!\nID: %s\nName: %s\nLink: %s", entry.ID, entry.Name, entry.Payload)
		o.reply(ctx, intent.ChatID, confirmation)
		return nil

	case IntentResolveDeepLink:
		return o.resolve(ctx, intent.ChatID, intent.Code)

	case IntentGreet:
		o.reply(ctx, intent.ChatID, greetingReply)
		return nil

	default:
		return nil
	}
}

func (o *Orchestrator) resolve(ctx context.Context, chatID int64, code string) error {
	rows, err := o.store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	entry, err := catalog.Resolve(code, rows)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			o.logger.Info("code not found", slog.String("code", code))
			o.reply(ctx, chatID, notFoundReply)
			return nil
		}
		return fmt.Errorf("resolve %q: %w", code, err)
	}

	switch entry.Kind() {
	case catalog.PayloadLink:
		o.reply(ctx, chatID, fmt.Sprintf("🎬 %s\n%s", entry.Name, entry.Payload))
	case catalog.PayloadVideo:
		o.reply(ctx, chatID, fmt.Sprintf("🎬 Sending your movie...\n%s", entry.Name))
		if err := o.messenger.SendVideo(ctx, chatID, entry.Payload, entry.Name); err != nil {
			o.logger.Error("send video failed", slog.String("id", entry.ID), slog.Any("error", err))
		}
	default:
		o.reply(ctx, chatID, fmt.Sprintf("🎬 Sending your movie...\n%s", entry.Name))
		if err := o.messenger.SendDocument(ctx, chatID, entry.Payload, entry.Name); err != nil {
			o.logger.Error("send document failed", slog.String("id", entry.ID), slog.Any("error", err))
		}
	}
	return nil
}

func (o *Orchestrator) reply(ctx context.Context, chatID int64, text string) {
	if err := o.messenger.SendText(ctx, chatID, text); err != nil {
		o.logger.Error("send reply failed", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}
