package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/cinedexbot/cinedex/internal/catalog"
)

// IntentKind names the single action an inbound update maps to.
type IntentKind string

const (
	IntentIgnore          IntentKind = "ignore"
	IntentRegisterAuto    IntentKind = "register_auto"
	IntentRegisterManual  IntentKind = "register_manual"
	IntentResolveDeepLink IntentKind = "resolve_deep_link"
	IntentGreet           IntentKind = "greet"
)

// Intent is the fully-typed classification of one inbound update. Only the
// fields matching Kind are populated.
type Intent struct {
	Kind   IntentKind
	ChatID int64

	// Auto is set for IntentRegisterAuto.
	Auto catalog.AutoSource
	// Tokens is set for IntentRegisterManual: the whitespace-split words of
	// the "add" command, command included.
	Tokens []string
	// Code is set for IntentResolveDeepLink.
	Code string
}

// Classify maps an arbitrary inbound update to exactly one intent. It has no
// side effects.
func Classify(update tgbotapi.Update) Intent {
	msg := primaryMessage(update)
	if msg == nil {
		return Intent{Kind: IntentIgnore}
	}
	chatID := int64(0)
	if msg.Chat != nil {
		chatID = msg.Chat.ID
	}

	if fileID, ok := pickMedia(msg); ok {
		src := catalog.AutoSource{
			Text:      msg.Text,
			Caption:   msg.Caption,
			ChatID:    chatID,
			MessageID: msg.MessageID,
			FileID:    fileID,
		}
		if msg.ForwardFromChat != nil {
			src.ForwardChatID = msg.ForwardFromChat.ID
			src.ForwardMessageID = msg.ForwardFromMessageID
		}
		return Intent{Kind: IntentRegisterAuto, ChatID: chatID, Auto: src}
	}

	text := msg.Text
	switch {
	case strings.HasPrefix(text, "add "):
		return Intent{Kind: IntentRegisterManual, ChatID: chatID, Tokens: strings.Fields(text)}
	case strings.HasPrefix(text, "/start"):
		parts := strings.Fields(text)
		if len(parts) > 1 {
			return Intent{Kind: IntentResolveDeepLink, ChatID: chatID, Code: parts[1]}
		}
		return Intent{Kind: IntentGreet, ChatID: chatID}
	default:
		return Intent{Kind: IntentIgnore, ChatID: chatID}
	}
}

// primaryMessage picks the first populated message slot: new message, then
// channel post, then edited message.
func primaryMessage(update tgbotapi.Update) *tgbotapi.Message {
	switch {
	case update.Message != nil:
		return update.Message
	case update.ChannelPost != nil:
		return update.ChannelPost
	case update.EditedMessage != nil:
		return update.EditedMessage
	default:
		return nil
	}
}

// pickMedia selects the message's media attachment: video, then document,
// then the largest photo size.
func pickMedia(msg *tgbotapi.Message) (string, bool) {
	switch {
	case msg.Video != nil:
		return msg.Video.FileID, true
	case msg.Document != nil:
		return msg.Document.FileID, true
	case len(msg.Photo) > 0:
		return pickLargestPhoto(msg.Photo).FileID, true
	default:
		return "", false
	}
}

func pickLargestPhoto(items []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := items[0]
	for _, item := range items[1:] {
		if item.FileSize > best.FileSize {
			best = item
			continue
		}
		if item.Width*item.Height > best.Width*best.Height {
			best = item
		}
	}
	return best
}
