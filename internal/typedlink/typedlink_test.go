package typedlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecode_Unscoped(t *testing.T) {
	r := New("")
	cases := map[string]string{
		"- causes [[Fire]]":                     "[[causes:Fire]]",
		"- is part of [[20240101000001|Whole]]": "[[is part of:20240101000001|Whole]]",
		"- see [[A]] and [[B]]":                 "[[see:A]] and [[B]]",
		"text\n- causes [[Fire]]\nmore\n":       "text\n[[causes:Fire]]\nmore\n",
		"- [[NoPrefix]]":                        "- [[NoPrefix]]",
		"[[causes:Fire]]":                       "[[causes:Fire]]",
		"- causes\n[[Fire]]":                    "- causes\n[[Fire]]",
	}
	for in, want := range cases {
		got := r.Recode(in)
		assert.Equal(t, want, got.Body, "input %q", in)
		assert.True(t, got.SectionFound)
	}
}

func TestRecode_Scoped(t *testing.T) {
	body := "# Note\n- intro [[A]]\n## Typed links\n- causes [[Fire]]\n- opposes [[Water]]\n### Sub\n- within [[Sub]]\n## Other\n- after [[B]]\n"
	got := New("## Typed links").Recode(body)

	want := "# Note\n- intro [[A]]\n## Typed links\n[[causes:Fire]]\n[[opposes:Water]]\n### Sub\n[[within:Sub]]\n## Other\n- after [[B]]\n"
	assert.Equal(t, want, got.Body)
	assert.Equal(t, 3, got.Recoded)
	assert.True(t, got.SectionFound)
}

func TestRecode_ScopedToEnd(t *testing.T) {
	got := New("## Links").Recode("## Links\n- causes [[Fire]]")
	assert.Equal(t, "## Links\n[[causes:Fire]]", got.Body)
}

func TestRecode_ScopedFirstOccurrenceOnly(t *testing.T) {
	body := "## Links\n- a [[X]]\n## Links\n- b [[Y]]\n"
	got := New("## Links").Recode(body)
	assert.Equal(t, "## Links\n[[a:X]]\n## Links\n- b [[Y]]\n", got.Body)
}

func TestRecode_MissingSectionIsNoop(t *testing.T) {
	body := "# Note\n- causes [[Fire]]\n"
	got := New("## Typed links").Recode(body)
	assert.Equal(t, body, got.Body)
	assert.False(t, got.SectionFound)
	assert.Zero(t, got.Recoded)
}

func TestRecode_PlainLabelHeading(t *testing.T) {
	body := "Relations:\n- causes [[Fire]]\n# Next\n- keeps [[Y]]\n"
	got := New("Relations:").Recode(body)
	assert.Equal(t, "Relations:\n[[causes:Fire]]\n# Next\n- keeps [[Y]]\n", got.Body)
}

func TestHeadingLevel(t *testing.T) {
	assert.Equal(t, 2, headingLevel("## Typed links"))
	assert.Equal(t, 1, headingLevel("#"))
	assert.Equal(t, 0, headingLevel("#tag"))
	assert.Equal(t, 0, headingLevel("plain"))
	assert.Equal(t, 0, headingLevel("####### seven"))
}
