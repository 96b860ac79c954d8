package archive

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Summary is the list-view record of a conversation. CreateTime and
// UpdateTime are the source values as-is, null when absent.
type Summary struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	CreateTime json.RawMessage `json:"create_time"`
	UpdateTime json.RawMessage `json:"update_time"`
}

// Summaries lists conversations newest first by update_time. A non-empty
// query keeps only titles containing it, case-insensitively.
func (a *Archive) Summaries(query string) []Summary {
	query = strings.ToLower(strings.TrimSpace(query))

	idx := make([]int, 0, len(a.entries))
	for i, e := range a.entries {
		if query != "" && !strings.Contains(strings.ToLower(e.Canonical.Title), query) {
			continue
		}
		idx = append(idx, i)
	}

	keys := make([]timeKey, len(a.entries))
	for _, i := range idx {
		keys[i] = newTimeKey(a.entries[i].raw.Get("update_time"))
	}
	sort.SliceStable(idx, func(x, y int) bool {
		return keys[idx[y]].less(keys[idx[x]])
	})

	out := make([]Summary, 0, len(idx))
	for _, i := range idx {
		e := a.entries[i]
		out = append(out, Summary{
			ID:         e.Canonical.ID,
			Title:      e.Canonical.Title,
			CreateTime: e.field("create_time"),
			UpdateTime: e.field("update_time"),
		})
	}
	return out
}

// timeKey orders heterogeneous timestamp values: missing or null first, then
// numbers, then strings.
type timeKey struct {
	rank int
	num  float64
	str  string
}

func newTimeKey(v gjson.Result) timeKey {
	switch v.Type {
	case gjson.Number:
		return timeKey{rank: 1, num: v.Num}
	case gjson.String:
		return timeKey{rank: 2, str: v.Str}
	}
	return timeKey{}
}

func (k timeKey) less(o timeKey) bool {
	if k.rank != o.rank {
		return k.rank < o.rank
	}
	switch k.rank {
	case 1:
		return k.num < o.num
	case 2:
		return k.str < o.str
	}
	return false
}
