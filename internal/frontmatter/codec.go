// Package frontmatter decodes and encodes the leading YAML block of a note.
//
// A header is recognised only when the text starts with a line holding
// exactly "---" and a later line closes it the same way. Anything else is
// body. Headers that are never modified are written back byte for byte.
package frontmatter

import (
	"fmt"
	"strings"

	"github.com/starford/cosmify/internal/apperr"
)

const delim = "---"

// Header is the ordered key/value block at the start of a note.
//
// While clean, the header remembers the exact text it was decoded from and
// Encode reproduces it. Prepend keeps the header clean by inserting a
// rendered line in front of that text; every other mutation marks it dirty
// and the whole block is serialized again.
type Header struct {
	fields *Map
	raw    string // block text between delimiters, valid while !dirty
	open   string // opening delimiter line with its line ending
	close  string // closing delimiter line with its line ending
	gap    string // blank lines between the closing delimiter and the body
	dirty  bool
	// flow is set when raw cannot take a textual line in front, e.g. a
	// flow mapping; Prepend then re-serializes.
	flow   bool
}

// NewHeader returns an empty header that encodes as a bare delimiter pair.
func NewHeader() *Header {
	return &Header{fields: NewMap(), open: delim + "\n", close: delim + "\n"}
}

// NewHeaderFrom returns a header holding m, serialized from scratch on Encode.
func NewHeaderFrom(m *Map) *Header {
	h := NewHeader()
	if m != nil {
		h.fields = m
	}
	h.dirty = true
	return h
}

// Fields exposes the decoded mapping. Callers must not mutate it; use Set or Prepend.
func (h *Header) Fields() *Map { return h.fields }

// Get returns the value stored under key.
func (h *Header) Get(key string) (Value, bool) { return h.fields.Get(key) }

// Has reports whether key is present.
func (h *Header) Has(key string) bool { return h.fields.Has(key) }

// Keys returns the header keys in order.
func (h *Header) Keys() []string { return h.fields.Keys() }

// Len returns the number of keys.
func (h *Header) Len() int { return h.fields.Len() }

// Dirty reports whether the header will be serialized from its fields.
func (h *Header) Dirty() bool { return h.dirty }

// Set stores v under key and marks the header dirty.
func (h *Header) Set(key string, v Value) {
	h.fields.Set(key, v)
	h.dirty = true
}

// Prepend inserts key as the first entry. On a clean block-mapping header
// with key absent the rendered entry is inserted textually, using the
// header's line ending, and the rest stays verbatim.
func (h *Header) Prepend(key string, v Value) error {
	if h.dirty || h.flow || h.fields.Has(key) {
		h.fields.Prepend(key, v)
		h.dirty = true
		return nil
	}
	entry := NewMap()
	entry.Set(key, v)
	line, err := marshalMap(entry)
	if err != nil {
		return err
	}
	if strings.HasSuffix(h.open, "\r\n") {
		line = strings.ReplaceAll(line, "\n", "\r\n")
	}
	h.fields.Prepend(key, v)
	h.raw = line + h.raw
	return nil
}

// Decode splits text into its header and body.
//
// When text does not start with a delimited block the header is nil and
// body is text unchanged. Blank lines right after the closing delimiter are
// not part of the body; they are kept on the header and dropped once the
// header is re-serialized. Invalid YAML inside the block yields an error
// wrapping apperr.ErrMalformedHeader.
func Decode(text string) (*Header, string, error) {
	nl := strings.IndexByte(text, '\n')
	if nl < 0 || !isDelimiter(text[:nl]) {
		return nil, text, nil
	}
	openEnd := nl + 1

	for pos := openEnd; pos < len(text); {
		lineEnd, next := len(text), len(text)
		if i := strings.IndexByte(text[pos:], '\n'); i >= 0 {
			lineEnd, next = pos+i, pos+i+1
		}
		if !isDelimiter(text[pos:lineEnd]) {
			pos = next
			continue
		}

		raw := text[openEnd:pos]
		fields, block, err := parseFields(raw)
		if err != nil {
			return nil, text, err
		}
		after := text[next:]
		body := strings.TrimLeft(after, "\r\n")
		return &Header{
			fields: fields,
			raw:    raw,
			open:   text[:openEnd],
			close:  text[pos:next],
			gap:    after[:len(after)-len(body)],
			flow:   !block,
		}, body, nil
	}

	// No closing delimiter: the whole text is body.
	return nil, text, nil
}

// Encode joins header and body. A nil header returns body unchanged.
func Encode(h *Header, body string) (string, error) {
	if h == nil {
		return body, nil
	}
	if !h.dirty {
		return h.open + h.raw + h.close + h.gap + body, nil
	}
	block, err := marshalMap(h.fields)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(block) + len(body) + 2*len(delim) + 2)
	b.WriteString(delim + "\n")
	b.WriteString(block)
	b.WriteString(delim + "\n")
	b.WriteString(body)
	return b.String(), nil
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == delim
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("frontmatter: %s: %w", fmt.Sprintf(format, args...), apperr.ErrMalformedHeader)
}
