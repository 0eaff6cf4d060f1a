package catalog

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// PlaceholderName is used when an auto-registered message carries neither a
// caption nor text.
const PlaceholderName = "Untitled Movie"

// AutoSource carries the fields of an inbound media message that the builder
// needs. Forward ids are zero when the message was not forwarded.
type AutoSource struct {
	Text             string
	Caption          string
	ChatID           int64
	MessageID        int
	ForwardChatID    int64
	ForwardMessageID int
	FileID           string
}

// NewAutoID returns "MOV" plus a uniformly random 5-digit code. Uniqueness is
// best effort only: the store is never consulted, so roughly one insertion in
// 90000 collides with an earlier code, and resolution then returns the
// earlier entry.
func NewAutoID() string {
	return fmt.Sprintf("MOV%d", 10000+rand.IntN(90000))
}

// BuildAutoEntry derives a catalog entry from an inbound media message.
// Missing optional fields never fail the build; the classifier has already
// guaranteed the message and media reference exist.
func BuildAutoEntry(src AutoSource) Entry {
	name := src.Caption
	if name == "" {
		name = src.Text
	}
	if name == "" {
		name = PlaceholderName
	}
	name = strings.SplitN(name, "\n", 2)[0]

	originChatID := src.ChatID
	originMessageID := src.MessageID
	if src.ForwardChatID != 0 && src.ForwardMessageID != 0 {
		originChatID = src.ForwardChatID
		originMessageID = src.ForwardMessageID
	}

	return Entry{
		ID:         NewAutoID(),
		Name:       name,
		Payload:    src.FileID,
		OriginLink: originLink(originChatID, originMessageID),
	}
}

// BuildManualEntry maps the whitespace-split tokens of an "add" command,
// shaped [command, id, link, ...nameWords], onto an entry. Tokens are taken
// verbatim: no trimming, and no validation that id or link are non-empty.
func BuildManualEntry(tokens []string) Entry {
	tok := func(i int) string {
		if i < len(tokens) {
			return tokens[i]
		}
		return ""
	}
	return Entry{
		ID:      tok(1),
		Name:    strings.Join(tokens[min(3, len(tokens)):], " "),
		Payload: tok(2),
	}
}

// originLink builds a t.me deep link to the message. Supergroup chat ids
// carry a "-100" prefix that the link format omits; other ids pass through
// unchanged.
func originLink(chatID int64, messageID int) string {
	clean := strings.TrimPrefix(strconv.FormatInt(chatID, 10), "-100")
	return fmt.Sprintf("https://t.me/c/%s/%d", clean, messageID)
}
