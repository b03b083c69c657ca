package frontmatter

// Kind discriminates the variants a header Value can hold.
type Kind uint8

const (
	Null Kind = iota
	Scalar
	List
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Mapping:
		return "mapping"
	}
	return "unknown"
}

// Style controls how a scalar is written back.
type Style uint8

const (
	StylePlain Style = iota
	// StyleQuoted always emits a double-quoted string, whatever the text looks like.
	StyleQuoted
	StyleLiteral
	StyleFolded
)

// YAML core tags carried by decoded scalars.
const (
	TagStr       = "!!str"
	TagInt       = "!!int"
	TagFloat     = "!!float"
	TagBool      = "!!bool"
	TagTimestamp = "!!timestamp"
)

// Value is a schema-less header value: a scalar, a list, a mapping, or null.
//
// Scalars keep their textual form and resolved YAML tag so that a value
// written back parses to the same type. A scalar with an empty Tag is
// written plain and left to YAML resolution.
type Value struct {
	Kind  Kind
	Text  string
	Tag   string
	Style Style
	Items []Value
	Map   *Map
	Flow  bool
}

// NullValue returns the absent value.
func NullValue() Value { return Value{Kind: Null} }

// String returns a string scalar; it stays a string even when the text
// looks like a number or a boolean.
func String(s string) Value { return Value{Kind: Scalar, Text: s, Tag: TagStr} }

// Plain returns an untagged scalar that is resolved by YAML on the next parse.
func Plain(s string) Value { return Value{Kind: Scalar, Text: s} }

// Quoted returns a string scalar that is always double-quoted on output.
func Quoted(s string) Value { return Value{Kind: Scalar, Text: s, Tag: TagStr, Style: StyleQuoted} }

// ListOf returns a list value holding items.
func ListOf(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: List, Items: items}
}

// EmptyList returns an empty flow list, written as [].
func EmptyList() Value { return Value{Kind: List, Items: []Value{}, Flow: true} }

// IsNull reports whether v is the absent value.
func (v Value) IsNull() bool { return v.Kind == Null }

// IsString reports whether v is a scalar of string type.
func (v Value) IsString() bool { return v.Kind == Scalar && v.Tag == TagStr }

// String returns the text of a scalar and "" for every other kind.
func (v Value) String() string {
	if v.Kind != Scalar {
		return ""
	}
	return v.Text
}

// Strings flattens v into its scalar texts: a scalar yields itself, a list
// yields its scalar items. Nested lists and mappings are skipped.
func (v Value) Strings() []string {
	switch v.Kind {
	case Scalar:
		return []string{v.Text}
	case List:
		out := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			if item.Kind == Scalar {
				out = append(out, item.Text)
			}
		}
		return out
	}
	return nil
}

// Map is an insertion-ordered string-keyed mapping of header values.
type Map struct {
	keys []string
	vals map[string]Value
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// Len returns the number of keys.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present, even with a null value.
func (m *Map) Has(key string) bool {
	_, ok := m.vals[key]
	return ok
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Prepend stores v under key and moves key to the front.
func (m *Map) Prepend(key string, v Value) {
	m.Delete(key)
	m.keys = append([]string{key}, m.keys...)
	m.vals[key] = v
}

// Delete removes key.
func (m *Map) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Range calls fn for every entry in order until fn returns false.
func (m *Map) Range(fn func(key string, v Value) bool) {
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}
