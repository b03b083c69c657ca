// Package typedlink recodes annotated list items such as
//
//	- causes [[Fire]]
//
// into the single-token typed link [[causes:Fire]].
//
// The destination is copied verbatim and is not resolved against note
// titles. Run the recoder after reference rewriting so that destinations
// already carry identifiers.
package typedlink

import (
	"regexp"
	"strings"
)

// itemRe matches "- <prefix> [[<destination>]]" within one line. The prefix
// starts with a non-space and contains no brackets, so it never swallows an
// earlier reference; the destination stops at the first "]]".
var itemRe = regexp.MustCompile(`- (\S[^\[\]\n]*?) \[\[([^\n]*?)\]\]`)

// Recoder rewrites typed links, optionally only inside one section.
type Recoder struct {
	heading string
	level   int
}

// New returns a Recoder. An empty heading applies to the whole body;
// otherwise only the section opened by the first line starting with
// heading is rewritten, up to the next heading of the same or a higher
// level. A heading without leading "#" ends at the next heading of any level.
func New(heading string) *Recoder {
	heading = strings.TrimSpace(heading)
	return &Recoder{heading: heading, level: headingLevel(heading)}
}

// Result is the outcome of recoding one body.
type Result struct {
	Body    string
	Recoded int
	// SectionFound is false when a heading is configured and absent; the
	// body is then returned unchanged.
	SectionFound bool
}

// Recode rewrites the typed links of body.
func (r *Recoder) Recode(body string) Result {
	if r.heading == "" {
		out, n := recode(body)
		return Result{Body: out, Recoded: n, SectionFound: true}
	}

	start, end, ok := r.section(body)
	if !ok {
		return Result{Body: body}
	}
	out, n := recode(body[start:end])
	return Result{Body: body[:start] + out + body[end:], Recoded: n, SectionFound: true}
}

// section returns the byte range between the end of the heading line and
// the start of the line that closes the section.
func (r *Recoder) section(body string) (int, int, bool) {
	start := -1
	for pos := 0; pos < len(body); {
		line, next := lineAt(body, pos)
		if start < 0 {
			if strings.HasPrefix(line, r.heading) {
				start = next
			}
		} else if lvl := headingLevel(line); lvl > 0 && (r.level == 0 || lvl <= r.level) {
			return start, pos, true
		}
		pos = next
	}
	if start < 0 {
		return 0, 0, false
	}
	return start, len(body), true
}

func recode(text string) (string, int) {
	matches := itemRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		b.WriteString("[[")
		b.WriteString(text[m[2]:m[3]])
		b.WriteString(":")
		b.WriteString(text[m[4]:m[5]])
		b.WriteString("]]")
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), len(matches)
}

// lineAt returns the line starting at pos, without its newline, and the
// index of the next line.
func lineAt(s string, pos int) (string, int) {
	if i := strings.IndexByte(s[pos:], '\n'); i >= 0 {
		return s[pos : pos+i], pos + i + 1
	}
	return s[pos:], len(s)
}

// headingLevel returns the ATX level of line, or 0 when it is not a heading.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	if n < len(line) && line[n] != ' ' && line[n] != '\t' {
		return 0
	}
	return n
}
