// Package parser extracts read-only facts from a note: header, body,
// reference targets, tags and type. It never modifies the note.
package parser

import (
	"regexp"
	"strings"

	"github.com/starford/cosmify/internal/frontmatter"
)

var (
	wikilinkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)
	tagRe      = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
)

// Result holds the output of parsing a Markdown file.
type Result struct {
	Header *frontmatter.Header // nil when the note has no header block
	Body   string
	Links  []string
	Tags   []string
	Title  string
	Type   string
}

// Parse extracts header, body, reference targets, tags, title and type
// from raw Markdown bytes. A malformed header is an error.
func Parse(data []byte) (*Result, error) {
	h, body, err := frontmatter.Decode(string(data))
	if err != nil {
		return nil, err
	}

	return &Result{
		Header: h,
		Body:   body,
		Links:  extractLinks(body),
		Tags:   extractTags(body, h),
		Title:  scalar(h, "title"),
		Type:   scalar(h, "type"),
	}, nil
}

// HasType reports whether the header carries a type field.
func (r *Result) HasType() bool {
	return r.Header != nil && r.Header.Has("type")
}

// extractLinks returns deduplicated reference targets, dropping aliases.
func extractLinks(body string) []string {
	matches := wikilinkRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		target, _, _ := strings.Cut(m[1], "|")
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// extractTags collects the header "tags" field (a string or a list) and
// every inline #tag of the body, without duplicates.
func extractTags(body string, h *frontmatter.Header) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(t string) {
		if t == "" {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	if h != nil {
		if raw, ok := h.Get("tags"); ok {
			for _, s := range raw.Strings() {
				add(s)
			}
		}
	}
	for _, m := range tagRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}
	return out
}

func scalar(h *frontmatter.Header, key string) string {
	if h == nil {
		return ""
	}
	v, ok := h.Get(key)
	if !ok {
		return ""
	}
	return v.String()
}
