// Package normalize rewrites note headers into the canonical shape expected
// by the graph viewer: snake_case lowercase keys, quoted strings and empty
// lists in place of missing values.
package normalize

import (
	"strings"

	"github.com/starford/cosmify/internal/frontmatter"
)

// Header returns a normalized copy of h. The result is always serialized
// from scratch. Two keys that normalize to the same name collapse into one;
// the later value wins.
func Header(h *frontmatter.Header) *frontmatter.Header {
	return frontmatter.NewHeaderFrom(Map(h.Fields()))
}

// Map normalizes every key and value of m into a new map.
func Map(m *frontmatter.Map) *frontmatter.Map {
	out := frontmatter.NewMap()
	if m == nil {
		return out
	}
	m.Range(func(k string, v frontmatter.Value) bool {
		out.Set(Key(k), Value(v))
		return true
	})
	return out
}

// Key lowercases k and replaces spaces with underscores.
func Key(k string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), " ", "_")
}

// Value normalizes a single header value:
//   - null becomes an empty list
//   - a blank string becomes an empty list
//   - any other string is trimmed and always double-quoted
//   - list items and mapping entries are normalized recursively
//
// Numbers, booleans and dates are left as they are.
func Value(v frontmatter.Value) frontmatter.Value {
	switch v.Kind {
	case frontmatter.Null:
		return frontmatter.EmptyList()

	case frontmatter.Scalar:
		if !v.IsString() {
			return v
		}
		s := strings.TrimSpace(v.Text)
		if s == "" {
			return frontmatter.EmptyList()
		}
		return frontmatter.Quoted(s)

	case frontmatter.List:
		items := make([]frontmatter.Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = Value(item)
		}
		v.Items = items
		return v

	case frontmatter.Mapping:
		v.Map = Map(v.Map)
		return v
	}
	return v
}
