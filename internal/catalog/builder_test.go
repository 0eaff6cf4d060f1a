package catalog

import (
	"regexp"
	"testing"
)

func TestNewAutoIDFormat(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^MOV\d{5}$`)
	for i := 0; i < 200; i++ {
		id := NewAutoID()
		if !pattern.MatchString(id) {
			t.Fatalf("unexpected id format: %s", id)
		}
	}
}

func TestBuildAutoEntryNamePrecedence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		src     AutoSource
		want    string
	}{
		{name: "caption first line", src: AutoSource{Caption: "Inception\nSci-fi"}, want: "Inception"},
		{name: "caption over text", src: AutoSource{Caption: "Caption", Text: "Text"}, want: "Caption"},
		{name: "text fallback", src: AutoSource{Text: "Some Movie"}, want: "Some Movie"},
		{name: "placeholder", src: AutoSource{}, want: PlaceholderName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			entry := BuildAutoEntry(tc.src)
			if entry.Name != tc.want {
				t.Fatalf("name=%q want=%q", entry.Name, tc.want)
			}
		})
	}
}

func TestBuildAutoEntryOriginLink(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  AutoSource
		want string
	}{
		{
			name: "forwarded message uses forward origin",
			src:  AutoSource{ChatID: -100555, MessageID: 9, ForwardChatID: -1009988, ForwardMessageID: 42},
			want: "https://t.me/c/9988/42",
		},
		{
			name: "plain message uses current chat",
			src:  AutoSource{ChatID: -100123456, MessageID: 7},
			want: "https://t.me/c/123456/7",
		},
		{
			name: "non-supergroup chat id passes through",
			src:  AutoSource{ChatID: 4242, MessageID: 3},
			want: "https://t.me/c/4242/3",
		},
		{
			name: "forward chat without forward message id is ignored",
			src:  AutoSource{ChatID: -100555, MessageID: 9, ForwardChatID: -1009988},
			want: "https://t.me/c/555/9",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			entry := BuildAutoEntry(tc.src)
			if entry.OriginLink != tc.want {
				t.Fatalf("origin=%q want=%q", entry.OriginLink, tc.want)
			}
		})
	}
}

func TestBuildAutoEntryPayload(t *testing.T) {
	t.Parallel()

	entry := BuildAutoEntry(AutoSource{FileID: "XYZ1", ChatID: -100555, MessageID: 9})
	if entry.Payload != "XYZ1" {
		t.Fatalf("payload=%q", entry.Payload)
	}
	if entry.ID == "" {
		t.Fatal("id must never be empty")
	}
}

func TestBuildManualEntry(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		tokens []string
		want   Entry
	}{
		{
			name:   "full command",
			tokens: []string{"add", "M1", "https://example.com/x", "Alpha", "Beta"},
			want:   Entry{ID: "M1", Name: "Alpha Beta", Payload: "https://example.com/x"},
		},
		{
			name:   "no name words",
			tokens: []string{"add", "M2", "https://example.com/y"},
			want:   Entry{ID: "M2", Payload: "https://example.com/y"},
		},
		{
			name:   "missing link",
			tokens: []string{"add", "M3"},
			want:   Entry{ID: "M3"},
		},
		{
			name:   "bare command keeps empty id",
			tokens: []string{"add"},
			want:   Entry{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := BuildManualEntry(tc.tokens)
			if got != tc.want {
				t.Fatalf("entry=%+v want=%+v", got, tc.want)
			}
		})
	}
}
