package convert

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/cosmify/internal/checksum"
	"github.com/starford/cosmify/internal/frontmatter"
	"github.com/starford/cosmify/internal/identity"
	"github.com/starford/cosmify/internal/models"
	"github.com/starford/cosmify/internal/normalize"
	"github.com/starford/cosmify/internal/parser"
	"github.com/starford/cosmify/internal/storage"
	"github.com/starford/cosmify/internal/translit"
	"github.com/starford/cosmify/internal/typedlink"
	"github.com/starford/cosmify/internal/wikilink"
)

// note is a selected note copied to the output root under name. dir is
// the folder it came from in the input vault.
type note struct {
	name string
	dir  string
}

// document is a converted note as recorded in the index.
type document struct {
	Path     string
	ID       string
	Title    string
	Type     string
	Checksum string
}

// selectAndCopy copies every image and every selected note into the flat
// output folder. A later file with an already used name overwrites the
// earlier copy.
func (p *Pipeline) selectAndCopy(ctx context.Context, rep *Report) ([]note, error) {
	files, err := p.in.List("")
	if err != nil {
		return nil, err
	}

	var notes []note
	seen := make(map[string]int)
	images := make(map[string]struct{})
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := f.Name()

		switch f.Kind {
		case models.KindImage:
			if _, dup := images[name]; dup {
				p.logger.Warn("overwritten", slog.String("path", f.Path), slog.String("name", name))
				rep.Overwritten++
			}
			images[name] = struct{}{}
			if err := storage.Copy(p.in, p.out, f.Path, name); err != nil {
				return nil, fmt.Errorf("%s: %w", f.Path, err)
			}
			rep.Images++

		case models.KindNote:
			data, err := p.in.Read(f.Path)
			if err != nil {
				return nil, err
			}
			res, err := parser.Parse(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Path, err)
			}
			d := p.opts.Criteria.Match(res)
			if !d.Selected {
				p.logger.Info("ignored", slog.String("path", f.Path), slog.String("reason", d.Reason))
				rep.Ignored++
				continue
			}
			p.logger.Info("selected", slog.String("path", f.Path), slog.Int("references", len(res.Links)))
			p.logger.Debug("references", slog.String("path", f.Path), slog.Any("titles", res.Links))
			rep.Selected++

			if i, dup := seen[name]; dup {
				p.logger.Warn("overwritten", slog.String("path", f.Path), slog.String("name", name))
				rep.Overwritten++
				notes[i].dir = f.Dir()
			} else {
				seen[name] = len(notes)
				notes = append(notes, note{name: name, dir: f.Dir()})
			}
			p.out.remember(name, f.ModTime)
			if err := p.out.Write(name, data); err != nil {
				return nil, fmt.Errorf("%s: %w", f.Path, err)
			}
		}
	}
	return notes, nil
}

// reformat normalizes the header of every note that has one.
func (p *Pipeline) reformat(ctx context.Context, notes []note, rep *Report) error {
	for _, n := range notes {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, h, body, err := p.load(n.name)
		if err != nil {
			return err
		}
		if h == nil {
			p.logger.Info("no header found", slog.String("path", n.name))
			continue
		}
		out, err := frontmatter.Encode(normalize.Header(h), body)
		if err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
		if out == text {
			continue
		}
		if err := p.out.Write(n.name, []byte(out)); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
		p.logger.Info("reformatted", slog.String("path", n.name))
		rep.Reformatted++
	}
	return nil
}

// folderTypes stores the source folder of each note as its first header
// key, replacing any existing type. Notes from the vault root keep their
// header as is.
func (p *Pipeline) folderTypes(ctx context.Context, notes []note, rep *Report) error {
	for _, n := range notes {
		if err := ctx.Err(); err != nil {
			return err
		}
		typ := FolderType(n.dir)
		if typ == "" {
			continue
		}
		text, h, body, err := p.load(n.name)
		if err != nil {
			return err
		}
		if h == nil {
			h = frontmatter.NewHeader()
		}
		if err := h.Prepend("type", frontmatter.String(typ)); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
		out, err := frontmatter.Encode(h, body)
		if err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
		if out == text {
			continue
		}
		if err := p.out.Write(n.name, []byte(out)); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
		p.logger.Info("type from folder", slog.String("path", n.name), slog.String("type", typ))
		rep.Typed++
	}
	return nil
}

// rewrite resolves references and recodes typed links in every note and
// persists each note at most once.
func (p *Pipeline) rewrite(ctx context.Context, assignments []identity.Assignment, titles *identity.TitleMap, rep *Report) ([]document, error) {
	var recoder *typedlink.Recoder
	if p.opts.TypedLinks {
		recoder = typedlink.New(p.opts.SemanticSection)
	}
	style := p.opts.LinkStyle
	if style == "" {
		style = wikilink.StyleBracketedID
	}

	docs := make([]document, 0, len(assignments))
	for _, a := range assignments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, h, body, err := p.load(a.Path)
		if err != nil {
			return nil, err
		}
		log := p.logger.With(slog.String("path", a.Path))

		res := wikilink.Rewrite(body, titles, style)
		for _, g := range res.Ghosts {
			log.Info("ghost reference", slog.String("title", g))
		}
		if res.Replaced > 0 {
			log.Info("references replaced", slog.Int("count", res.Replaced))
		}
		rep.Replaced += res.Replaced
		rep.Ghosts += len(res.Ghosts)
		body = res.Body

		if recoder != nil {
			tl := recoder.Recode(body)
			if !tl.SectionFound {
				log.Info("semantic section not found", slog.String("heading", p.opts.SemanticSection))
			}
			if tl.Recoded > 0 {
				log.Info("typed links recoded", slog.Int("count", tl.Recoded))
			}
			rep.Recoded += tl.Recoded
			body = tl.Body
		}

		out, err := frontmatter.Encode(h, body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Path, err)
		}
		if out != text {
			if err := p.out.Write(a.Path, []byte(out)); err != nil {
				return nil, fmt.Errorf("%s: %w", a.Path, err)
			}
		}

		docs = append(docs, document{
			Path:     a.Path,
			ID:       a.ID,
			Title:    a.Title,
			Type:     headerType(h),
			Checksum: checksum.String(out),
		})
	}
	return docs, nil
}

// rename gives every note an ASCII file name.
func (p *Pipeline) rename(ctx context.Context, docs []document, rep *Report) error {
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		old := docs[i].Path
		name := translit.Filename(old)
		if name == old {
			continue
		}
		if err := p.out.Move(old, name); err != nil {
			return fmt.Errorf("%s: %w", old, err)
		}
		p.logger.Info("renamed", slog.String("path", old), slog.String("name", name))
		docs[i].Path = name
		rep.Renamed++
	}
	return nil
}

// load reads and decodes one output note.
func (p *Pipeline) load(name string) (string, *frontmatter.Header, string, error) {
	data, err := p.out.Read(name)
	if err != nil {
		return "", nil, "", fmt.Errorf("%s: %w", name, err)
	}
	text := string(data)
	h, body, err := frontmatter.Decode(text)
	if err != nil {
		return "", nil, "", fmt.Errorf("%s: %w", name, err)
	}
	return text, h, body, nil
}

func headerType(h *frontmatter.Header) string {
	if h == nil {
		return ""
	}
	v, ok := h.Get("type")
	if !ok || v.Kind != frontmatter.Scalar {
		return ""
	}
	return v.Text
}

// FolderType turns a folder path into a type value: each segment is
// lowercased and its spaces become hyphens. "Reading Notes/Books" becomes
// "reading-notes/books". The vault root yields "".
func FolderType(dir string) string {
	if dir == "" || dir == "." {
		return ""
	}
	parts := strings.Split(strings.Trim(dir, "/"), "/")
	for i, s := range parts {
		parts[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
	}
	return strings.Join(parts, "/")
}
