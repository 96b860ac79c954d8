package normalize

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// field returns obj[key], or a non-existent result when obj is not an object.
func field(obj gjson.Result, key string) gjson.Result {
	if !obj.IsObject() {
		return gjson.Result{}
	}
	return obj.Get(gjson.Escape(key))
}

// hasAnyKey reports whether obj is an object carrying at least one of keys.
func hasAnyKey(obj gjson.Result, keys ...string) bool {
	for _, key := range keys {
		if field(obj, key).Exists() {
			return true
		}
	}
	return false
}

// firstTruthy returns the first of keys whose value is truthy.
func firstTruthy(obj gjson.Result, keys ...string) (gjson.Result, bool) {
	for _, key := range keys {
		if v := field(obj, key); Truthy(v) {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// firstTruthyOrLast is firstTruthy that, when nothing is truthy, yields the
// value of the last key as found, which may be missing.
func firstTruthyOrLast(obj gjson.Result, keys ...string) gjson.Result {
	if v, ok := firstTruthy(obj, keys...); ok {
		return v
	}
	if len(keys) == 0 {
		return gjson.Result{}
	}
	return field(obj, keys[len(keys)-1])
}

// Truthy reports whether v holds a usable value. Null, false, 0, "" and empty
// containers count as absent.
func Truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		nonEmpty := false
		v.ForEach(func(_, _ gjson.Result) bool {
			nonEmpty = true
			return false
		})
		return nonEmpty
	}
	return false
}

// stringify renders a scalar as text. Strings are returned verbatim, null as
// "", anything else as compact JSON.
func stringify(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return ""
	}
	return compact(v.Raw)
}

func compact(raw string) string {
	return string(pretty.Ugly([]byte(raw)))
}
