// Package translit turns note file names into ASCII, hyphenated names.
package translit

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonASCII = runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })

// Filename decomposes accented letters, drops every non-ASCII rune and
// replaces spaces with hyphens: "Étude à Paris.md" → "Etude-a-Paris.md".
// When nothing of the stem survives, name is returned unchanged.
func Filename(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(nonASCII))
	out, _, err := transform.String(t, name)
	if err != nil {
		return name
	}
	ext := filepath.Ext(out)
	if strings.TrimSpace(strings.TrimSuffix(out, ext)) == "" {
		return name
	}
	return strings.ReplaceAll(out, " ", "-")
}
