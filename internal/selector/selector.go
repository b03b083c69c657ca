// Package selector decides which notes of the input vault take part in a
// conversion run.
package selector

import (
	"strings"

	"github.com/starford/cosmify/internal/parser"
)

// Reasons a note is ignored.
const (
	ReasonMissingTags   = "missing tags"
	ReasonMissingType   = "missing type"
	ReasonDifferentType = "different type"
)

// Criteria is the selection predicate. Zero criteria select every note.
type Criteria struct {
	// Type, when set, must equal the note's header "type".
	Type string
	// Tags must all be present among the header tags and inline #tags.
	Tags []string
}

// Decision is the outcome of matching one note.
type Decision struct {
	Selected bool
	Reason   string
}

// SplitTags turns a space-separated tag list into tags.
func SplitTags(s string) []string {
	return strings.Fields(s)
}

// Match applies the criteria to a parsed note.
func (c Criteria) Match(r *parser.Result) Decision {
	if len(c.Tags) > 0 {
		have := make(map[string]struct{}, len(r.Tags))
		for _, t := range r.Tags {
			have[t] = struct{}{}
		}
		for _, want := range c.Tags {
			if _, ok := have[want]; !ok {
				return Decision{Reason: ReasonMissingTags}
			}
		}
	}
	if c.Type != "" {
		if !r.HasType() {
			return Decision{Reason: ReasonMissingType}
		}
		if r.Type != c.Type {
			return Decision{Reason: ReasonDifferentType}
		}
	}
	return Decision{Selected: true}
}
