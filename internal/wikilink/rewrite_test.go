package wikilink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type titles map[string]string

func (t titles) Lookup(title string) (string, bool) {
	id, ok := t[title]
	return id, ok
}

var known = titles{
	"Alpha":     "20240101000001",
	"Gamma Ray": "20240101000003",
}

func TestRewrite_Scenarios(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		style Style
		want  string
	}{
		{"plain", "[[Alpha]]", StyleBracketedID, "[[20240101000001|Alpha]]"},
		{"plain markdown", "[[Alpha]]", StyleMarkdownLink, "[Alpha]([[20240101000001]])"},
		{"alias", "see [[Alpha| the first ]] here", StyleBracketedID, "see [[20240101000001|the first]] here"},
		{"alias markdown", "[[Gamma Ray|gamma]]", StyleMarkdownLink, "[gamma]([[20240101000003]])"},
		{"ghost", "[[Beta|B]]", StyleBracketedID, "[[Beta|B]]"},
		{"image", "![[photo.png]]", StyleBracketedID, "![](photo.png)"},
		{"image upper", "![[Scan 01.JPEG]]", StyleBracketedID, "![](Scan 01.JPEG)"},
		{"note embed untouched", "![[Alpha]]", StyleBracketedID, "![[Alpha]]"},
		{"followed by paren", "[[Alpha]](x)", StyleBracketedID, "[[Alpha]](x)"},
		{"no line spanning", "[[Alpha\n]]", StyleBracketedID, "[[Alpha\n]]"},
		{"empty", "[[]]", StyleBracketedID, "[[]]"},
		{"title not trimmed", "[[Alpha ]]", StyleBracketedID, "[[Alpha ]]"},
		{"nested opener", "[[x [[Alpha]]", StyleBracketedID, "[[x [[20240101000001|Alpha]]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Rewrite(tc.in, known, tc.style)
			assert.Equal(t, tc.want, got.Body)
		})
	}
}

func TestRewrite_DoesNotSpanClosingBrackets(t *testing.T) {
	in := "[[Alpha]](kept) and [[Gamma Ray]]"
	got := Rewrite(in, known, StyleBracketedID)
	assert.Equal(t, "[[Alpha]](kept) and [[20240101000003|Gamma Ray]]", got.Body)
	assert.Equal(t, 1, got.Replaced)
}

func TestRewrite_CountsAndGhosts(t *testing.T) {
	in := "[[Alpha]] [[Nope]] ![[a.png]] [[Gamma Ray|g]] [[Other|o]]"
	got := Rewrite(in, known, StyleBracketedID)
	assert.Equal(t, 3, got.Replaced)
	assert.Equal(t, []string{"Nope", "Other"}, got.Ghosts)
}

func TestRewrite_Idempotent(t *testing.T) {
	in := "# Note\n[[Alpha]], [[Gamma Ray|g]], [[Ghost]] and ![[pic.jpg]]\n- causes [[Alpha]]\n"
	for _, style := range []Style{StyleBracketedID, StyleMarkdownLink} {
		once := Rewrite(in, known, style).Body
		twice := Rewrite(once, known, style)
		assert.Equal(t, once, twice.Body, "style %s", style)
		assert.Zero(t, twice.Replaced, "style %s", style)
	}
}

func TestRewrite_NoReferences(t *testing.T) {
	in := "plain text with [single] brackets"
	got := Rewrite(in, known, StyleBracketedID)
	assert.Equal(t, in, got.Body)
	assert.Zero(t, got.Replaced)
	assert.Empty(t, got.Ghosts)
}
