package convert

import (
	"time"

	"github.com/starford/cosmify/internal/index"
	"github.com/starford/cosmify/internal/selector"
	"github.com/starford/cosmify/internal/wikilink"
)

// IDMode selects how missing identifiers are generated.
type IDMode string

const (
	IDModeCounter      IDMode = "counter"
	IDModeCreationDate IDMode = "creation-date"
)

// DefaultTitleMapFile is the name of the title/identifier table written
// to the output folder.
const DefaultTitleMapFile = "_title2id.csv"

// Options configures one conversion run.
type Options struct {
	Criteria        selector.Criteria
	IDMode          IDMode
	LinkStyle       wikilink.Style
	TypedLinks      bool
	SemanticSection string
	Reformat        bool
	FolderToType    bool
	RenameFiles     bool
	TitleMapFile    string
}

// DefaultOptions returns options matching the tool's defaults.
func DefaultOptions() Options {
	return Options{
		IDMode:       IDModeCounter,
		LinkStyle:    wikilink.StyleBracketedID,
		RenameFiles:  true,
		TitleMapFile: DefaultTitleMapFile,
	}
}

// Option is a functional option for a Pipeline.
type Option func(*Pipeline)

// WithIndex records every converted note in idx at the end of a run.
func WithIndex(idx index.DocumentIndex) Option {
	return func(p *Pipeline) {
		p.index = idx
	}
}

// WithClock overrides the time source that seeds the identifier counter.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}
