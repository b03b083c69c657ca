// Package convert runs the conversion pipeline from an input vault to an
// output folder: selection and copy, header normalization, folder types,
// identity assignment, reference rewriting, typed links, file renaming and
// the optional SQLite index.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/cosmify/internal/checksum"
	"github.com/starford/cosmify/internal/identity"
	"github.com/starford/cosmify/internal/index"
	"github.com/starford/cosmify/internal/storage"
)

// Report summarizes one run.
type Report struct {
	Selected    int
	Ignored     int
	Images      int
	Overwritten int
	Reformatted int
	Typed       int
	IDs         int
	Titles      int
	Replaced    int
	Ghosts      int
	Recoded     int
	Renamed     int
	Indexed     int
	// Changed counts indexed notes whose content differs from the
	// previous run.
	Changed int
	// Notes holds the final output paths of the converted notes.
	Notes []string
	// TitleMap is the title to identifier table of the run.
	TitleMap *identity.TitleMap
}

// Pipeline converts one input vault into one output folder.
type Pipeline struct {
	in     storage.Provider
	out    *keepTimes
	opts   Options
	index  index.DocumentIndex
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Pipeline reading from in and writing to out.
func New(in, out storage.Provider, opts Options, logger *slog.Logger, popts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TitleMapFile == "" {
		opts.TitleMapFile = DefaultTitleMapFile
	}
	if opts.IDMode == "" {
		opts.IDMode = IDModeCounter
	}
	p := &Pipeline{
		in:     in,
		out:    newKeepTimes(out),
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
	for _, o := range popts {
		o(p)
	}
	return p
}

// Run executes every stage in order. The identity stage completes for all
// notes before any reference is rewritten.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	started := p.now()
	rep := &Report{}
	p.out.reset()

	notes, err := p.selectAndCopy(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("convert: select: %w", err)
	}

	if p.opts.Reformat {
		if err := p.reformat(ctx, notes, rep); err != nil {
			return nil, fmt.Errorf("convert: reformat: %w", err)
		}
	}
	if p.opts.FolderToType {
		if err := p.folderTypes(ctx, notes, rep); err != nil {
			return nil, fmt.Errorf("convert: folder type: %w", err)
		}
	}

	titles, assignments, err := p.assign(ctx, notes, rep)
	if err != nil {
		return nil, fmt.Errorf("convert: identity: %w", err)
	}
	rep.TitleMap = titles

	docs, err := p.rewrite(ctx, assignments, titles, rep)
	if err != nil {
		return nil, fmt.Errorf("convert: rewrite: %w", err)
	}

	if p.opts.RenameFiles {
		if err := p.rename(ctx, docs, rep); err != nil {
			return nil, fmt.Errorf("convert: rename: %w", err)
		}
	}
	for _, d := range docs {
		rep.Notes = append(rep.Notes, d.Path)
	}

	if p.index != nil {
		if err := p.record(docs, started, rep); err != nil {
			return nil, fmt.Errorf("convert: index: %w", err)
		}
	}

	p.logger.Info("conversion done",
		slog.Int("selected", rep.Selected),
		slog.Int("ignored", rep.Ignored),
		slog.Int("images", rep.Images),
		slog.Int("replaced", rep.Replaced),
		slog.Int("ghosts", rep.Ghosts),
		slog.Duration("elapsed", p.now().Sub(started)),
	)
	return rep, nil
}

// assign runs the identity stage over every note and writes the title
// table next to them.
func (p *Pipeline) assign(ctx context.Context, notes []note, rep *Report) (*identity.TitleMap, []identity.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var ids identity.Source
	switch p.opts.IDMode {
	case IDModeCreationDate:
		ids = identity.NewCreationDateSource(p.out, nil)
	default:
		ids = identity.NewCounterSource(identity.NewCounter(p.now()))
	}

	paths := make([]string, len(notes))
	for i, n := range notes {
		paths[i] = n.name
	}
	titles, assignments, err := identity.NewAssigner(p.out, ids, p.logger).Assign(paths)
	if err != nil {
		return nil, nil, err
	}
	for _, a := range assignments {
		if a.IDCreated {
			rep.IDs++
		}
		if a.TitleCreated {
			rep.Titles++
		}
	}

	var buf bytes.Buffer
	if err := titles.WriteCSV(&buf); err != nil {
		return nil, nil, err
	}
	if err := p.out.Write(p.opts.TitleMapFile, buf.Bytes()); err != nil {
		return nil, nil, err
	}
	return titles, assignments, nil
}

// record replaces the index contents with the notes of this run.
func (p *Pipeline) record(docs []document, at time.Time, rep *Report) error {
	prev, err := p.index.AllChecksums()
	if err != nil {
		return err
	}

	cur := make(map[string]string, len(docs))
	rows := make([]index.DocumentRow, 0, len(docs))
	for _, d := range docs {
		cur[d.Path] = d.Checksum
		rows = append(rows, index.DocumentRow{
			Path:        d.Path,
			ID:          d.ID,
			Title:       d.Title,
			Type:        d.Type,
			Checksum:    d.Checksum,
			ConvertedAt: at,
		})
	}
	removed, err := p.index.ReplaceAll(rows)
	if err != nil {
		return err
	}
	if removed > 0 {
		p.logger.Info("index pruned", slog.Int("removed", removed))
	}
	changed := checksum.Changed(prev, cur)
	for _, path := range changed {
		p.logger.Info("changed", slog.String("path", path))
	}
	total, err := p.index.Count()
	if err != nil {
		return err
	}
	rep.Indexed = total
	rep.Changed = len(changed)
	return nil
}
