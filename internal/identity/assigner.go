// Package identity makes sure every note carries an id and a title, and
// builds the title → identifier map used to rewrite references.
package identity

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/starford/cosmify/internal/frontmatter"
)

// Header keys owned by the assigner.
const (
	KeyID    = "id"
	KeyTitle = "title"
)

// Store reads and writes note text.
type Store interface {
	Read(path string) ([]byte, error)
	Write(path string, content []byte) error
}

// Assignment reports what the assigner found or created for one note.
type Assignment struct {
	Path         string
	ID           string
	Title        string
	IDCreated    bool
	TitleCreated bool
}

// Assigner completes missing ids and titles in place.
type Assigner struct {
	store  Store
	ids    Source
	logger *slog.Logger
}

// NewAssigner returns an Assigner writing through store and drawing new
// identifiers from ids. One Source serves the whole run.
func NewAssigner(store Store, ids Source, logger *slog.Logger) *Assigner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assigner{store: store, ids: ids, logger: logger}
}

// Assign processes paths in order and returns the title map keyed by each
// note's final title, together with the per-note assignments. The first
// malformed header aborts the run with an error naming the note.
func (a *Assigner) Assign(paths []string) (*TitleMap, []Assignment, error) {
	titles := NewTitleMap()
	out := make([]Assignment, 0, len(paths))
	for _, p := range paths {
		as, err := a.AssignOne(p)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", p, err)
		}
		titles.Add(as.Title, as.ID)
		out = append(out, as)
	}
	return titles, out, nil
}

// AssignOne completes the id, then the title, of a single note. Each
// completion is its own read-modify-write of the stored text, so an
// interrupted run leaves notes either untouched or with valid headers.
func (a *Assigner) AssignOne(path string) (Assignment, error) {
	as := Assignment{Path: path}

	id, created, err := a.ensure(path, KeyID, func() (frontmatter.Value, error) {
		next, err := a.ids.NextID(path)
		if err != nil {
			return frontmatter.Value{}, err
		}
		return frontmatter.Plain(next), nil
	})
	if err != nil {
		return as, err
	}
	as.ID, as.IDCreated = id, created
	if created {
		a.logger.Info("id created", slog.String("path", path), slog.String("id", id))
	}

	title, created, err := a.ensure(path, KeyTitle, func() (frontmatter.Value, error) {
		return frontmatter.String(Stem(path)), nil
	})
	if err != nil {
		return as, err
	}
	as.Title, as.TitleCreated = title, created
	if created {
		a.logger.Info("title created", slog.String("path", path), slog.String("title", title))
	}

	if !as.IDCreated && !as.TitleCreated {
		a.logger.Info("metadata ok", slog.String("path", path))
	}
	return as, nil
}

// ensure returns the scalar text stored under key, inserting the value
// produced by gen as the first header key when it is missing, null, or not
// a scalar.
func (a *Assigner) ensure(path, key string, gen func() (frontmatter.Value, error)) (string, bool, error) {
	data, err := a.store.Read(path)
	if err != nil {
		return "", false, err
	}
	h, body, err := frontmatter.Decode(string(data))
	if err != nil {
		return "", false, err
	}
	if h != nil {
		if v, ok := h.Get(key); ok && v.Kind == frontmatter.Scalar {
			return v.Text, false, nil
		} else if ok && !v.IsNull() {
			a.logger.Warn("replacing non-scalar header value",
				slog.String("path", path), slog.String("key", key), slog.String("kind", v.Kind.String()))
		}
	} else {
		h = frontmatter.NewHeader()
	}

	v, err := gen()
	if err != nil {
		return "", false, err
	}
	if err := h.Prepend(key, v); err != nil {
		return "", false, err
	}
	text, err := frontmatter.Encode(h, body)
	if err != nil {
		return "", false, err
	}
	if err := a.store.Write(path, []byte(text)); err != nil {
		return "", false, err
	}
	return v.Text, true, nil
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
