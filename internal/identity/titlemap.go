package identity

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Pair is one title/identifier record.
type Pair struct {
	Title string
	ID    string
}

// TitleMap resolves note titles to identifiers. Titles are not checked for
// uniqueness: a later note with the same title shadows the earlier one in
// lookups, while Pairs keeps every record in the order it was added.
type TitleMap struct {
	pairs []Pair
	ids   map[string]string
}

// NewTitleMap returns an empty map.
func NewTitleMap() *TitleMap {
	return &TitleMap{ids: make(map[string]string)}
}

// Add records that title resolves to id.
func (m *TitleMap) Add(title, id string) {
	m.pairs = append(m.pairs, Pair{Title: title, ID: id})
	m.ids[title] = id
}

// Lookup returns the identifier for title.
func (m *TitleMap) Lookup(title string) (string, bool) {
	id, ok := m.ids[title]
	return id, ok
}

// Len returns the number of distinct titles.
func (m *TitleMap) Len() int { return len(m.ids) }

// Pairs returns every record in insertion order.
func (m *TitleMap) Pairs() []Pair {
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// WriteCSV writes the records as two-column CSV rows: title, identifier.
func (m *TitleMap) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	for _, p := range m.pairs {
		if err := cw.Write([]string{p.Title, p.ID}); err != nil {
			return fmt.Errorf("identity: write title map: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("identity: write title map: %w", err)
	}
	return nil
}
