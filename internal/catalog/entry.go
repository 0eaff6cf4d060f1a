package catalog

import (
	"context"
	"strings"
)

// Entry is one cataloged movie. The payload is a Telegram file_id for
// auto-registered media and an external URL for manually registered links.
type Entry struct {
	ID         string
	Name       string
	Payload    string
	OriginLink string
}

// Store is the durable ordered catalog. Row 0 of ReadAll is the header row.
type Store interface {
	ReadAll(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []string) error
}

// HeaderRow is the fixed first row of a catalog sheet.
var HeaderRow = []string{"ID", "Name", "Payload", "Origin Link"}

// Row encodes the entry in the fixed column layout [id, name, payload,
// origin_link].
func (e Entry) Row() []string {
	return []string{e.ID, e.Name, e.Payload, e.OriginLink}
}

func entryFromRow(row []string) Entry {
	col := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Entry{
		ID:         col(0),
		Name:       col(1),
		Payload:    col(2),
		OriginLink: col(3),
	}
}

// PayloadKind classifies how an entry's payload should be delivered.
type PayloadKind string

const (
	PayloadVideo    PayloadKind = "video"
	PayloadDocument PayloadKind = "document"
	PayloadLink     PayloadKind = "link"
)

// Kind infers the delivery type of the payload. Raw file references are
// told apart by the "BAAC" marker Telegram uses in video file_ids; this is a
// convention of the platform's reference encoding, not a guarantee, so some
// videos may go out as documents.
func (e Entry) Kind() PayloadKind {
	if strings.HasPrefix(e.Payload, "http://") || strings.HasPrefix(e.Payload, "https://") {
		return PayloadLink
	}
	if strings.Contains(e.Payload, "BAAC") {
		return PayloadVideo
	}
	return PayloadDocument
}
