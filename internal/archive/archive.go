// Package archive holds the conversations of one export document, loaded
// once and only read afterwards.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/tidwall/gjson"

	"github.com/MikeSquared-Agency/convoview/internal/normalize"
)

// Archive is safe for concurrent reads. It is never mutated after Load.
type Archive struct {
	source  string
	shape   normalize.Shape
	entries []Entry
	byID    map[string]int
}

// Entry pairs a raw conversation with its normalized forms.
type Entry struct {
	Canonical normalize.Conversation
	messages  []normalize.GraphMessage
	raw       gjson.Result
}

// Stats summarizes what was loaded.
type Stats struct {
	Conversations int
	Messages      int
}

// Load reads and normalizes the export document at path. A missing file
// yields an empty archive rather than an error.
func Load(path string, logger *slog.Logger) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Error("conversations file not found", "path", path)
			return newArchive(path, normalize.ShapeUnknown, nil), nil
		}
		return nil, fmt.Errorf("read conversations file: %w", err)
	}
	return FromBytes(data, path, logger), nil
}

// FromBytes normalizes an in-memory export document. source labels it in logs.
func FromBytes(data []byte, source string, logger *slog.Logger) *Archive {
	if !gjson.ValidBytes(data) {
		logger.Error("conversations document is not valid JSON", "source", source)
		return newArchive(source, normalize.ShapeUnknown, nil)
	}

	shape, raws := normalize.Resolve(gjson.ParseBytes(data))
	if shape == normalize.ShapeUnknown {
		logger.Warn("unknown conversations document shape", "source", source)
	}

	a := newArchive(source, shape, raws)
	stats := a.Stats()
	logger.Info("conversations loaded",
		"source", source,
		"shape", shape.String(),
		"conversations", stats.Conversations,
		"messages", stats.Messages,
	)
	return a
}

func newArchive(source string, shape normalize.Shape, raws []gjson.Result) *Archive {
	a := &Archive{
		source:  source,
		shape:   shape,
		entries: make([]Entry, 0, len(raws)),
		byID:    make(map[string]int, len(raws)),
	}
	for i, raw := range raws {
		e := Entry{
			Canonical: normalize.NormalizeConversation(raw, i),
			messages:  normalize.ExtractMessages(raw),
			raw:       raw,
		}
		// First conversation wins when ids collide.
		if _, seen := a.byID[e.Canonical.ID]; !seen {
			a.byID[e.Canonical.ID] = i
		}
		a.entries = append(a.entries, e)
	}
	return a
}

// Source is the path or label the archive was loaded from.
func (a *Archive) Source() string { return a.source }

// Shape is the document shape the resolver matched.
func (a *Archive) Shape() normalize.Shape { return a.shape }

func (a *Archive) Len() int { return len(a.entries) }

func (a *Archive) Stats() Stats {
	s := Stats{Conversations: len(a.entries)}
	for _, e := range a.entries {
		s.Messages += e.Canonical.MessageCount
	}
	return s
}

// Conversations returns the canonical conversations in discovery order.
func (a *Archive) Conversations() []normalize.Conversation {
	convs := make([]normalize.Conversation, len(a.entries))
	for i, e := range a.entries {
		convs[i] = e.Canonical
	}
	return convs
}

// Find looks a conversation up by canonical id.
func (a *Archive) Find(id string) (Entry, bool) {
	i, ok := a.byID[id]
	if !ok {
		return Entry{}, false
	}
	return a.entries[i], true
}

// Messages is the node-mapping extraction of the conversation, in
// create_time order. Conversations without a mapping have none.
func (e Entry) Messages() []normalize.GraphMessage {
	return e.messages
}

// FirstMessageNode returns the first mapping node carrying a message.
func (e Entry) FirstMessageNode() (string, json.RawMessage, bool) {
	if !e.raw.IsObject() {
		return "", nil, false
	}
	mapping := e.raw.Get("mapping")
	if !mapping.IsObject() {
		return "", nil, false
	}

	var (
		id    string
		node  json.RawMessage
		found bool
	)
	mapping.ForEach(func(k, v gjson.Result) bool {
		if !normalize.Truthy(v.Get("message")) {
			return true
		}
		id, node, found = k.String(), json.RawMessage(v.Raw), true
		return false
	})
	return id, node, found
}

// field returns the raw JSON for key, or nil when the conversation lacks it.
func (e Entry) field(key string) json.RawMessage {
	if !e.raw.IsObject() {
		return nil
	}
	v := e.raw.Get(gjson.Escape(key))
	if !v.Exists() {
		return nil
	}
	return json.RawMessage(v.Raw)
}
