package normalize

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// messageCollectionKeys are scanned, all of them, for message collections.
var messageCollectionKeys = []string{"messages", "items", "mapping", "messages_list", "chat"}

const titleFromTextLimit = 80

// ParseConversations resolves and normalizes every conversation in doc, in
// discovery order.
func ParseConversations(doc gjson.Result) []Conversation {
	raws := ResolveConversations(doc)
	convs := make([]Conversation, 0, len(raws))
	for i, raw := range raws {
		convs = append(convs, NormalizeConversation(raw, i))
	}
	return convs
}

// NormalizeConversation builds the canonical conversation for raw, the
// index-th conversation of its document. Messages keep discovery order.
func NormalizeConversation(raw gjson.Result, index int) Conversation {
	candidates := collectMessages(raw)
	messages := make([]Message, 0, len(candidates))
	for _, m := range candidates {
		messages = append(messages, NormalizeMessage(m))
	}

	return Conversation{
		ID:           conversationID(raw, index),
		Title:        conversationTitle(raw, index, messages),
		MessageCount: len(messages),
		Messages:     messages,
	}
}

// collectMessages concatenates every known message collection on raw.
// Mappings contribute their values and scalars contribute themselves.
func collectMessages(raw gjson.Result) []gjson.Result {
	var candidates []gjson.Result
	for _, key := range messageCollectionKeys {
		v := field(raw, key)
		switch {
		case !v.Exists():
		case v.IsObject():
			v.ForEach(func(_, m gjson.Result) bool {
				candidates = append(candidates, m)
				return true
			})
		case v.IsArray():
			candidates = append(candidates, elements(v)...)
		default:
			candidates = append(candidates, v)
		}
	}

	if len(candidates) == 0 && raw.IsArray() {
		candidates = elements(raw)
	}
	if len(candidates) == 0 {
		if m := field(raw, "message"); m.Exists() {
			candidates = append(candidates, m)
		}
	}
	return candidates
}

func conversationID(raw gjson.Result, index int) string {
	if v, ok := firstTruthy(raw, "id", "conversation_id", "key"); ok {
		return stringify(v)
	}
	return fmt.Sprintf("conv-%d", index)
}

func conversationTitle(raw gjson.Result, index int, messages []Message) string {
	if v, ok := firstTruthy(raw, "title", "name"); ok {
		return stringify(v)
	}
	if len(messages) > 0 {
		return truncateRunes(messages[0].Text, titleFromTextLimit)
	}
	return fmt.Sprintf("Conversation %d", index+1)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
