package normalize

import "github.com/tidwall/gjson"

// Shape names the top-level layout of an export document.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeWrapper       // {"conversations": [...]}
	ShapeArray         // [...]
	ShapeMapping       // {"<id>": {conversation}, ...}
	ShapeSingle        // one conversation object
)

func (s Shape) String() string {
	switch s {
	case ShapeWrapper:
		return "wrapper"
	case ShapeArray:
		return "array"
	case ShapeMapping:
		return "mapping"
	case ShapeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// conversationKeys mark an object as conversation-like.
var conversationKeys = []string{"messages", "items", "mapping"}

// ResolveConversations flattens an export document into its raw
// conversations. Unknown shapes yield an empty, non-nil slice.
func ResolveConversations(doc gjson.Result) []gjson.Result {
	_, convs := Resolve(doc)
	return convs
}

// Resolve is ResolveConversations that also reports which shape matched.
func Resolve(doc gjson.Result) (Shape, []gjson.Result) {
	if list := field(doc, "conversations"); list.IsArray() {
		return ShapeWrapper, elements(list)
	}
	if doc.IsArray() {
		return ShapeArray, elements(doc)
	}
	if !doc.IsObject() {
		return ShapeUnknown, []gjson.Result{}
	}

	convs := []gjson.Result{}
	doc.ForEach(func(_, v gjson.Result) bool {
		if v.IsObject() && hasAnyKey(v, conversationKeys...) {
			convs = append(convs, v)
		}
		return true
	})
	if len(convs) > 0 {
		return ShapeMapping, convs
	}
	if hasAnyKey(doc, conversationKeys...) {
		return ShapeSingle, []gjson.Result{doc}
	}
	return ShapeUnknown, convs
}

// elements returns the members of a JSON array in order, never nil.
func elements(list gjson.Result) []gjson.Result {
	out := []gjson.Result{}
	list.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v)
		return true
	})
	return out
}
