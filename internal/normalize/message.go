package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// fieldAttempt is one step of a heuristic key scan: look up key and, when
// present, let extract decide whether the value is usable.
type fieldAttempt struct {
	key     string
	extract func(gjson.Result) (string, bool)
}

// firstAttempt runs attempts in order and returns the first accepted value.
func firstAttempt(obj gjson.Result, attempts []fieldAttempt) (string, bool) {
	for _, a := range attempts {
		v := field(obj, a.key)
		if !v.Exists() {
			continue
		}
		if s, ok := a.extract(v); ok {
			return s, true
		}
	}
	return "", false
}

// Role keys stop at the first one present, whatever it holds.
var roleAttempts = []fieldAttempt{
	{"role", roleName},
	{"author", roleName},
	{"from", roleName},
	{"sender", roleName},
}

// Text keys keep scanning until one yields non-empty text.
var textAttempts = []fieldAttempt{
	{"text", nonEmptyText},
	{"content", nonEmptyText},
	{"message", nonEmptyText},
	{"html", nonEmptyText},
	{"body", nonEmptyText},
}

// Timestamp keys stop at the first one present, even when it is null.
var timestampAttempts = []fieldAttempt{
	{"create_time", timestamp},
	{"created_at", timestamp},
	{"timestamp", timestamp},
	{"time", timestamp},
	{"date", timestamp},
}

var attachmentKeys = []string{"attachments", "files", "media"}

var (
	assistantMarkers = []string{"assist", "bot", "gpt"}
	userMarkers      = []string{"user", "human"}
)

// NormalizeMessage builds the canonical message for one raw message value.
// Values that are not objects are treated as {"text": raw}.
func NormalizeMessage(raw gjson.Result) Message {
	if !raw.IsObject() {
		return Message{
			Role:        RoleUser,
			Text:        ExtractText(raw),
			Attachments: []Attachment{},
		}
	}

	role, _ := firstAttempt(raw, roleAttempts)
	if role == "" {
		role = RoleUser
	}
	text, ok := firstAttempt(raw, textAttempts)
	if !ok {
		text = ExtractText(field(raw, "content"))
	}
	createdAt, _ := firstAttempt(raw, timestampAttempts)

	return Message{
		Role:        role,
		Text:        text,
		CreatedAt:   createdAt,
		Attachments: detectAttachments(raw),
	}
}

// roleName maps a role-ish value to a canonical role. It always accepts, so
// the first role key present decides.
func roleName(v gjson.Result) (string, bool) {
	var name string
	if v.IsObject() {
		if r, ok := firstTruthy(v, "role", "name"); ok {
			name = stringify(r)
		}
	} else {
		name = stringify(v)
	}

	name = strings.ToLower(name)
	switch {
	case containsAny(name, assistantMarkers):
		return RoleAssistant, true
	case containsAny(name, userMarkers):
		return RoleUser, true
	}
	return RoleUser, true
}

func nonEmptyText(v gjson.Result) (string, bool) {
	text := ExtractText(v)
	return text, text != ""
}

func timestamp(v gjson.Result) (string, bool) {
	if v.Type == gjson.Number {
		return epochToISO(v), true
	}
	return stringify(v), true
}

// Bounds of years 1 through 9999, the range an ISO-8601 date can express.
const (
	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// epochToISO converts Unix seconds to UTC ISO-8601 with a Z suffix. Values
// that cannot be represented come back as their raw JSON number.
func epochToISO(v gjson.Result) string {
	secs := v.Float()
	if math.IsNaN(secs) || secs < minEpochSeconds || secs > maxEpochSeconds {
		return v.Raw
	}
	return time.Unix(int64(secs), 0).UTC().Format("2006-01-02T15:04:05") + "Z"
}

// detectAttachments reads the first attachment key holding an array.
func detectAttachments(msg gjson.Result) []Attachment {
	attachments := []Attachment{}
	for _, key := range attachmentKeys {
		list := field(msg, key)
		if !list.IsArray() {
			continue
		}
		list.ForEach(func(_, a gjson.Result) bool {
			attachments = append(attachments, normalizeAttachment(a))
			return true
		})
		break
	}
	return attachments
}

func normalizeAttachment(a gjson.Result) Attachment {
	if !a.IsObject() {
		s := stringify(a)
		return Attachment{Name: &s, URL: &s}
	}

	var att Attachment
	if name := firstTruthyOrLast(a, "filename", "name", "title", "id"); name.Exists() && name.Type != gjson.Null {
		s := stringify(name)
		att.Name = &s
	}
	if url := firstTruthyOrLast(a, "url", "src", "path"); url.Exists() && url.Type != gjson.Null {
		s := stringify(url)
		if Truthy(url) && !strings.HasPrefix(s, "http") {
			s = AttachmentURLPrefix + baseName(s)
		}
		att.URL = &s
	}
	return att
}

// baseName returns the final slash-separated element of p. Unlike path.Base
// it returns "" for a trailing slash.
func baseName(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
