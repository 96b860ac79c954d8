package normalize

import (
	"strings"

	"github.com/tidwall/gjson"
)

// maxContentDepth bounds how far ExtractText descends into nested content.
const maxContentDepth = 32

// blockKeys hold nested content blocks when an object has no text or content.
var blockKeys = []string{"parts", "items", "blocks"}

// ExtractText resolves the textual payload of a message content value. It
// accepts plain strings, objects with text/content, lists of blocks, and
// nestings of those. Unknown objects fall back to their compact JSON.
func ExtractText(content gjson.Result) string {
	return extractText(content, 0)
}

func extractText(v gjson.Result, depth int) string {
	if depth > maxContentDepth {
		return ""
	}

	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return ""
	case v.Type == gjson.String:
		return v.Str
	case v.IsObject():
		if text := v.Get("text"); text.Exists() {
			return stringify(text)
		}
		if inner := v.Get("content"); inner.Exists() {
			return extractText(inner, depth+1)
		}
		for _, key := range blockKeys {
			if blocks := v.Get(key); blocks.Exists() {
				return extractText(blocks, depth+1)
			}
		}
		return compact(v.Raw)
	case v.IsArray():
		return strings.Join(blockTexts(v, depth), "\n\n")
	default:
		return stringify(v)
	}
}

// blockTexts renders each element of a block list, skipping nulls.
func blockTexts(list gjson.Result, depth int) []string {
	var parts []string
	list.ForEach(func(_, block gjson.Result) bool {
		switch {
		case block.Type == gjson.Null:
		case block.Type == gjson.String:
			parts = append(parts, block.Str)
		case block.IsObject():
			if text := block.Get("text"); text.Exists() {
				if text.Type != gjson.Null {
					parts = append(parts, stringify(text))
				}
			} else if inner := block.Get("content"); inner.Exists() {
				parts = append(parts, extractText(inner, depth+1))
			} else {
				parts = append(parts, compact(block.Raw))
			}
		default:
			parts = append(parts, stringify(block))
		}
		return true
	})
	return parts
}
