package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/cosmify/internal/apperr"
)

func TestDecode_HeaderAndBody(t *testing.T) {
	h, body, err := Decode("---\ntitle: Hello\ntags:\n  - go\n  - notes\n---\n# Hello\nBody text.\n")
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, []string{"title", "tags"}, h.Keys())
	title, ok := h.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Hello", title.String())
	assert.True(t, title.IsString())

	tags, _ := h.Get("tags")
	assert.Equal(t, List, tags.Kind)
	assert.Equal(t, []string{"go", "notes"}, tags.Strings())
	assert.Equal(t, "# Hello\nBody text.\n", body)
}

func TestDecode_NoHeader(t *testing.T) {
	for _, text := range []string{
		"# Just a heading\nSome text.\n",
		"",
		"---",
		"\n---\ntitle: x\n---\n",
		"----\ntitle: x\n----\n",
	} {
		h, body, err := Decode(text)
		require.NoError(t, err, "text %q", text)
		assert.Nil(t, h, "text %q", text)
		assert.Equal(t, text, body)
	}
}

func TestDecode_UnclosedBlockIsBody(t *testing.T) {
	text := "---\ntitle: x\nno closing delimiter\n"
	h, body, err := Decode(text)
	require.NoError(t, err)
	assert.Nil(t, h)
	assert.Equal(t, text, body)
}

func TestDecode_MalformedHeader(t *testing.T) {
	for _, text := range []string{
		"---\n: invalid: yaml: {{{\n---\nBody\n",
		"---\n- just\n- a list\n---\nBody\n",
		"---\n? [complex, key]\n: v\n---\n",
	} {
		_, _, err := Decode(text)
		require.Error(t, err, "text %q", text)
		assert.ErrorIs(t, err, apperr.ErrMalformedHeader)
	}
}

func TestDecode_EmptyAndCommentOnlyBlocks(t *testing.T) {
	for _, text := range []string{"---\n---\nbody", "---\n# just a comment\n---\nbody", "---\n\n---\nbody"} {
		h, body, err := Decode(text)
		require.NoError(t, err)
		require.NotNil(t, h)
		assert.Zero(t, h.Len())
		assert.Equal(t, "body", body)
	}
}

func TestDecode_ValueKinds(t *testing.T) {
	text := "---\nid: 20240101000001\nempty:\ndraft: true\nquoted: \"42\"\nmeta:\n  Author Name: Ada\n---\n"
	h, _, err := Decode(text)
	require.NoError(t, err)

	id, _ := h.Get("id")
	assert.Equal(t, Scalar, id.Kind)
	assert.Equal(t, TagInt, id.Tag)

	empty, ok := h.Get("empty")
	assert.True(t, ok)
	assert.True(t, empty.IsNull())

	draft, _ := h.Get("draft")
	assert.Equal(t, TagBool, draft.Tag)

	quoted, _ := h.Get("quoted")
	assert.True(t, quoted.IsString())
	assert.Equal(t, StyleQuoted, quoted.Style)

	meta, _ := h.Get("meta")
	require.Equal(t, Mapping, meta.Kind)
	author, ok := meta.Map.Get("Author Name")
	require.True(t, ok)
	assert.Equal(t, "Ada", author.String())
}

func TestRoundTrip_Verbatim(t *testing.T) {
	cases := []string{
		"---\ntitle: Hello\n---\n# Hello\n",
		"---\ntitle:   spaced   # comment\ntags: [a,   b]\n---\n\n\nBody after blank lines\n",
		"---\r\ntitle: crlf\r\n---\r\nbody\r\n",
		"---\ntitle: eof\n---",
		"---\n---\n",
		"no header at all\n",
	}
	for _, text := range cases {
		h, body, err := Decode(text)
		require.NoError(t, err)
		out, err := Encode(h, body)
		require.NoError(t, err)
		assert.Equal(t, text, out)
	}
}

func TestPrepend_KeepsRestVerbatim(t *testing.T) {
	text := "---\ntitle:   Spaced   # keep me\n---\nbody\n"
	h, body, err := Decode(text)
	require.NoError(t, err)

	require.NoError(t, h.Prepend("id", Plain("20240101000001")))
	assert.False(t, h.Dirty())
	assert.Equal(t, []string{"id", "title"}, h.Keys())

	out, err := Encode(h, body)
	require.NoError(t, err)
	assert.Equal(t, "---\nid: 20240101000001\ntitle:   Spaced   # keep me\n---\nbody\n", out)
}

func TestPrepend_FlowMappingReserializes(t *testing.T) {
	for _, text := range []string{
		"---\n{tags: [a], type: x}\n---\nbody\n",
		"---\n~\n---\nbody\n",
	} {
		h, body, err := Decode(text)
		require.NoError(t, err, text)

		require.NoError(t, h.Prepend("id", Plain("20240101000001")))
		assert.True(t, h.Dirty(), text)

		out, err := Encode(h, body)
		require.NoError(t, err)
		again, againBody, err := Decode(out)
		require.NoError(t, err, out)
		assert.Equal(t, h.Keys(), again.Keys())
		assert.Equal(t, "body\n", againBody)
	}
}

func TestPrepend_KeepsCRLF(t *testing.T) {
	h, body, err := Decode("---\r\ntags: a\r\n---\r\nbody\r\n")
	require.NoError(t, err)

	require.NoError(t, h.Prepend("id", Plain("20240101000001")))
	require.NoError(t, h.Prepend("title", String("n")))

	out, err := Encode(h, body)
	require.NoError(t, err)
	assert.Equal(t, "---\r\ntitle: n\r\nid: 20240101000001\r\ntags: a\r\n---\r\nbody\r\n", out)
}

func TestPrepend_NewHeader(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.Prepend("title", String("2024")))

	out, err := Encode(h, "body\n")
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: \"2024\"\n---\nbody\n", out)

	again, body, err := Decode(out)
	require.NoError(t, err)
	title, _ := again.Get("title")
	assert.True(t, title.IsString())
	assert.Equal(t, "body\n", body)
}

func TestSet_ReserializesAndTrimsGap(t *testing.T) {
	h, body, err := Decode("---\nTitle: x\n---\n\n\nbody\n")
	require.NoError(t, err)

	h.Set("type", String("article"))
	out, err := Encode(h, body)
	require.NoError(t, err)
	assert.Equal(t, "---\nTitle: x\ntype: article\n---\nbody\n", out)

	// A second pass must not grow blank lines.
	h2, body2, err := Decode(out)
	require.NoError(t, err)
	h2.Set("type", String("article"))
	out2, err := Encode(h2, body2)
	require.NoError(t, err)
	assert.Equal(t, out, out2)
}

func TestEncode_QuotedStrings(t *testing.T) {
	m := NewMap()
	m.Set("version", Quoted("1.0"))
	m.Set("flag", Quoted("yes"))
	m.Set("tags", ListOf(Quoted("a b"), Quoted("c")))
	m.Set("aliases", EmptyList())

	out, err := Encode(NewHeaderFrom(m), "")
	require.NoError(t, err)
	assert.Equal(t, "---\nversion: \"1.0\"\nflag: \"yes\"\ntags:\n  - \"a b\"\n  - \"c\"\naliases: []\n---\n", out)
}

func TestEncode_NilHeader(t *testing.T) {
	out, err := Encode(nil, "plain body")
	require.NoError(t, err)
	assert.Equal(t, "plain body", out)
}
