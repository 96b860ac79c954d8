package normalize

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractMessages reads a conversation stored as a node mapping
// (mapping: {node_id: {message, parent, children}}). Only visible user and
// assistant nodes with non-blank parts are kept, ordered by message
// create_time. Nodes without a numeric create_time sort as 0, and ties keep
// mapping order.
func ExtractMessages(conv gjson.Result) []GraphMessage {
	type node struct {
		msg        GraphMessage
		createTime float64
	}

	mapping := field(conv, "mapping")
	if !mapping.IsObject() {
		return []GraphMessage{}
	}

	var nodes []node
	mapping.ForEach(func(id, n gjson.Result) bool {
		msg := field(n, "message")
		if !Truthy(msg) {
			return true
		}

		role := field(field(msg, "author"), "role")
		if role.Type != gjson.String || (role.Str != RoleUser && role.Str != RoleAssistant) {
			return true
		}
		if Truthy(field(field(msg, "metadata"), "is_visually_hidden_from_conversation")) {
			return true
		}

		parts := renderParts(field(field(msg, "content"), "parts"))
		if len(parts) == 0 || (len(parts) == 1 && strings.TrimSpace(parts[0]) == "") {
			return true
		}

		var createTime float64
		if ct := field(msg, "create_time"); ct.Type == gjson.Number {
			createTime = ct.Num
		}
		nodes = append(nodes, node{
			msg: GraphMessage{
				ID:   id.String(),
				Role: role.Str,
				Text: strings.Join(parts, "\n"),
			},
			createTime: createTime,
		})
		return true
	})

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].createTime < nodes[j].createTime
	})

	msgs := make([]GraphMessage, len(nodes))
	for i, n := range nodes {
		msgs[i] = n.msg
	}
	return msgs
}

// renderParts turns content parts into text. Strings pass through, structured
// parts go through the content extractor, nulls are dropped.
func renderParts(parts gjson.Result) []string {
	if !parts.IsArray() {
		return nil
	}
	var out []string
	parts.ForEach(func(_, p gjson.Result) bool {
		switch {
		case p.Type == gjson.Null:
		case p.Type == gjson.String:
			out = append(out, p.Str)
		default:
			out = append(out, ExtractText(p))
		}
		return true
	})
	return out
}
