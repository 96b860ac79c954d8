package normalize

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestExtractMessages_SortsByCreateTime(t *testing.T) {
	conv := `{"mapping":{
		"n1":{"message":{"author":{"role":"user"},"content":{"parts":["hello"]},"create_time":5}},
		"n2":{"message":{"author":{"role":"assistant"},"content":{"parts":["hi back"]},"create_time":2}}
	}}`

	msgs := ExtractMessages(gjson.Parse(conv))
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID != "n2" || msgs[0].Role != RoleAssistant || msgs[0].Text != "hi back" {
		t.Errorf("msg[0] = %+v, want n2 assistant 'hi back'", msgs[0])
	}
	if msgs[1].ID != "n1" || msgs[1].Role != RoleUser || msgs[1].Text != "hello" {
		t.Errorf("msg[1] = %+v, want n1 user 'hello'", msgs[1])
	}
}

func TestExtractMessages_SkipRules(t *testing.T) {
	conv := `{"mapping":{
		"root":{"message":null,"children":["sys"]},
		"empty":{"message":{}},
		"sys":{"message":{"author":{"role":"system"},"content":{"parts":["setup"]}}},
		"tool":{"message":{"author":{"role":"tool"},"content":{"parts":["result"]}}},
		"hidden":{"message":{"author":{"role":"user"},"content":{"parts":["secret"]},"metadata":{"is_visually_hidden_from_conversation":true}}},
		"blank":{"message":{"author":{"role":"assistant"},"content":{"parts":[""]}}},
		"spaces":{"message":{"author":{"role":"assistant"},"content":{"parts":["   "]}}},
		"noparts":{"message":{"author":{"role":"user"},"content":{"content_type":"text"}}},
		"kept":{"message":{"author":{"role":"user"},"content":{"parts":["","x"]},"metadata":{"is_visually_hidden_from_conversation":false}}}
	}}`

	msgs := ExtractMessages(gjson.Parse(conv))
	if len(msgs) != 1 {
		t.Fatalf("expected only the kept node, got %+v", msgs)
	}
	if msgs[0].ID != "kept" || msgs[0].Text != "\nx" {
		t.Errorf("msg = %+v, want kept with text %q", msgs[0], "\nx")
	}
}

func TestExtractMessages_MissingCreateTimeSortsFirstAndTiesKeepOrder(t *testing.T) {
	conv := `{"mapping":{
		"late":{"message":{"author":{"role":"user"},"content":{"parts":["c"]},"create_time":9}},
		"b":{"message":{"author":{"role":"user"},"content":{"parts":["b"]},"create_time":null}},
		"a":{"message":{"author":{"role":"assistant"},"content":{"parts":["a"]}}}
	}}`

	msgs := ExtractMessages(gjson.Parse(conv))
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	order := []string{msgs[0].ID, msgs[1].ID, msgs[2].ID}
	if order[0] != "b" || order[1] != "a" || order[2] != "late" {
		t.Errorf("order = %v, want [b a late]", order)
	}
}

func TestExtractMessages_StructuredParts(t *testing.T) {
	conv := `{"mapping":{"n":{"message":{"author":{"role":"assistant"},"content":{"parts":["see:",{"text":"caption"},null]}}}}}`

	msgs := ExtractMessages(gjson.Parse(conv))
	if len(msgs) != 1 || msgs[0].Text != "see:\ncaption" {
		t.Errorf("unexpected messages %+v", msgs)
	}
}

func TestExtractMessages_NoMapping(t *testing.T) {
	for _, conv := range []string{`{"messages":[{"text":"flat"}]}`, `{"mapping":[1,2]}`, `[]`, `null`} {
		msgs := ExtractMessages(gjson.Parse(conv))
		if msgs == nil || len(msgs) != 0 {
			t.Errorf("expected empty non-nil result for %s, got %v", conv, msgs)
		}
	}
}
