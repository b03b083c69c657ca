// Package wikilink rewrites [[Title]] references so they point at note
// identifiers instead of titles.
//
// Rewriting runs in two steps: a scan collects the spans to replace, then a
// single pass rebuilds the body. Nothing the rewriter emits is matched by a
// later scan, so running it again on its own output changes nothing.
package wikilink

import (
	"strings"
)

// Style selects the output form of a resolved reference.
type Style string

const (
	// StyleBracketedID writes [[id|label]].
	StyleBracketedID Style = "bracketed-id"
	// StyleMarkdownLink writes [label]([[id]]).
	StyleMarkdownLink Style = "markdown-link"
)

// Resolver maps a title to its identifier.
type Resolver interface {
	Lookup(title string) (string, bool)
}

// Result is the outcome of rewriting one body.
type Result struct {
	Body     string
	Replaced int      // references and image embeds rewritten
	Ghosts   []string // titles that did not resolve, in order of appearance
}

type span struct {
	start, end int
	text       string
}

// Rewrite resolves every [[Title]] and [[Title|Alias]] in body through r and
// turns image embeds ![[name.png]] into ![](name.png). Unresolved titles are
// left byte for byte.
func Rewrite(body string, r Resolver, style Style) Result {
	spans, ghosts := scan(body, r, style)
	return Result{
		Body:     rebuild(body, spans),
		Replaced: len(spans),
		Ghosts:   ghosts,
	}
}

// scan walks body left to right. A reference is the text between "[[" and
// the first "]]" on the same line; it never contains "]]" and never spans
// lines. References preceded by "!" are embeds. References followed by "("
// are already in markdown-link form and are skipped.
func scan(body string, r Resolver, style Style) ([]span, []string) {
	var (
		spans  []span
		ghosts []string
	)
	for pos := 0; pos < len(body); {
		i := strings.Index(body[pos:], "[[")
		if i < 0 {
			break
		}
		open := pos + i
		inner, end, ok := enclosed(body, open)
		if !ok {
			pos = open + 2
			continue
		}
		if j := strings.LastIndex(inner, "[["); j >= 0 {
			// Nested opener: restart from the innermost one.
			pos = open + 2 + j
			continue
		}
		pos = end

		if open > 0 && body[open-1] == '!' {
			if isImage(inner) {
				spans = append(spans, span{start: open - 1, end: end, text: "![](" + inner + ")"})
			}
			continue
		}
		if end < len(body) && body[end] == '(' {
			continue
		}

		title, alias, hasAlias := strings.Cut(inner, "|")
		id, found := r.Lookup(title)
		if !found {
			ghosts = append(ghosts, title)
			continue
		}
		label := title
		if hasAlias {
			label = strings.TrimSpace(alias)
		}
		spans = append(spans, span{start: open, end: end, text: format(id, label, style)})
	}
	return spans, ghosts
}

// enclosed returns the text between the "[[" at open and the first "]]"
// after it, and the index just past that "]]". The reference must be
// non-empty and fit on one line.
func enclosed(body string, open int) (string, int, bool) {
	rest := body[open+2:]
	closeAt := strings.Index(rest, "]]")
	if closeAt <= 0 {
		return "", 0, false
	}
	inner := rest[:closeAt]
	if strings.ContainsAny(inner, "\n\r") {
		return "", 0, false
	}
	return inner, open + 2 + closeAt + 2, true
}

func isImage(name string) bool {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return false
	}
	switch strings.ToLower(name[dot+1:]) {
	case "jpg", "jpeg", "png":
		return true
	}
	return false
}

func format(id, label string, style Style) string {
	if style == StyleMarkdownLink {
		return "[" + label + "]([[" + id + "]])"
	}
	return "[[" + id + "|" + label + "]]"
}

func rebuild(body string, spans []span) string {
	if len(spans) == 0 {
		return body
	}
	var b strings.Builder
	b.Grow(len(body) + 16*len(spans))
	last := 0
	for _, s := range spans {
		b.WriteString(body[last:s.start])
		b.WriteString(s.text)
		last = s.end
	}
	b.WriteString(body[last:])
	return b.String()
}
