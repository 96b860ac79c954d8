package normalize

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestNormalizeConversation_SourceIDAndTitle(t *testing.T) {
	conv := NormalizeConversation(gjson.Parse(`{"conversation_id":"c-9","name":"Named","messages":[{"text":"hello"}]}`), 4)

	if conv.ID != "c-9" {
		t.Errorf("id = %q, want c-9", conv.ID)
	}
	if conv.Title != "Named" {
		t.Errorf("title = %q, want Named", conv.Title)
	}
	if conv.MessageCount != 1 || len(conv.Messages) != 1 {
		t.Errorf("expected 1 message, got count=%d len=%d", conv.MessageCount, len(conv.Messages))
	}
}

func TestNormalizeConversation_SynthesizedFields(t *testing.T) {
	long := strings.Repeat("é", 100)
	conv := NormalizeConversation(gjson.Parse(`{"id":"","messages":[{"text":"`+long+`"}]}`), 3)

	if conv.ID != "conv-3" {
		t.Errorf("id = %q, want conv-3", conv.ID)
	}
	if conv.Title != strings.Repeat("é", 80) {
		t.Errorf("expected title truncated to 80 runes, got %d runes", len([]rune(conv.Title)))
	}

	empty := NormalizeConversation(gjson.Parse(`{"messages":[]}`), 2)
	if empty.Title != "Conversation 3" {
		t.Errorf("title = %q, want Conversation 3", empty.Title)
	}
	if empty.Messages == nil || empty.MessageCount != 0 {
		t.Errorf("expected empty non-nil messages, got %v", empty.Messages)
	}

	blank := NormalizeConversation(gjson.Parse(`{"messages":[{"text":""},{"text":"second"}]}`), 0)
	if blank.Title != "" {
		t.Errorf("title = %q, want the blank first message text", blank.Title)
	}
}

func TestNormalizeConversation_MessageCollections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"mapping values", `{"mapping":{"b":{"text":"one"},"a":{"text":"two"}}}`, []string{"one", "two"}},
		{"keys concatenate", `{"messages":[{"text":"m"}],"items":[{"text":"i"}],"chat":"c"}`, []string{"m", "i", "c"}},
		{"scalar collection", `{"messages_list":"hello"}`, []string{"hello"}},
		{"lone message", `{"message":{"text":"lone"}}`, []string{"lone"}},
		{"conversation is a list", `[{"text":"x"},"y"]`, []string{"x", "y"}},
		{"null collection", `{"messages":null}`, []string{""}},
		{"nothing", `{"title":"t"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NormalizeConversation(gjson.Parse(tt.raw), 0)
			var got []string
			for _, m := range conv.Messages {
				got = append(got, m.Text)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("texts = %q, want %q", got, tt.want)
			}
			if conv.MessageCount != len(conv.Messages) {
				t.Errorf("message_count %d does not match %d messages", conv.MessageCount, len(conv.Messages))
			}
		})
	}
}

func TestNormalizeConversation_ChatGPTMappingNodes(t *testing.T) {
	raw := `{"title":"Export","mapping":{
		"root":{"id":"root","message":null,"children":["n1"]},
		"n1":{"id":"n1","message":{"author":{"role":"user"},"content":{"content_type":"text","parts":["ping"]}},"parent":"root"}
	}}`

	conv := NormalizeConversation(gjson.Parse(raw), 0)
	if len(conv.Messages) != 2 {
		t.Fatalf("expected every mapping node as a message, got %d", len(conv.Messages))
	}
	if conv.Messages[1].Text != "ping" {
		t.Errorf("expected node text via message content parts, got %q", conv.Messages[1].Text)
	}
}

func TestParseConversations_Deterministic(t *testing.T) {
	doc := gjson.Parse(`[
		{"id":"a","mapping":{"x":{"text":"1"},"y":{"text":"2"}}},
		{"messages":[{"role":"assistant","content":[{"text":"hi"}],"create_time":10}]}
	]`)

	first := ParseConversations(doc)
	second := ParseConversations(doc)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output across runs")
	}
	if len(first) != 2 || first[1].ID != "conv-1" {
		t.Fatalf("unexpected conversations %+v", first)
	}
	if first[1].Messages[0].CreatedAt != "1970-01-01T00:00:10Z" {
		t.Errorf("created_at = %q", first[1].Messages[0].CreatedAt)
	}
}

func TestParseConversations_UnknownShape(t *testing.T) {
	convs := ParseConversations(gjson.Parse(`"not a document"`))
	if convs == nil || len(convs) != 0 {
		t.Errorf("expected empty non-nil result, got %v", convs)
	}
}
