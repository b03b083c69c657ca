package identity

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/starford/cosmify/internal/models"
)

// Layout formats identifiers derived from time: year to second, 14 digits.
const Layout = "20060102150405"

// Source yields an identifier for a note that lacks one.
type Source interface {
	NextID(path string) (string, error)
}

// Counter is the run-scoped sequential identifier source. It is seeded
// once from the run's start time and only ever moves forward.
type Counter struct {
	last atomic.Int64
}

// NewCounter returns a counter whose first value is start, formatted with
// Layout, plus one.
func NewCounter(start time.Time) *Counter {
	seed, _ := strconv.ParseInt(start.Format(Layout), 10, 64)
	c := &Counter{}
	c.last.Store(seed)
	return c
}

// Next advances the counter and returns the new value.
func (c *Counter) Next() int64 { return c.last.Add(1) }

// CounterSource hands out counter values as identifiers.
type CounterSource struct {
	counter *Counter
}

// NewCounterSource returns a Source drawing from c.
func NewCounterSource(c *Counter) CounterSource { return CounterSource{counter: c} }

// NextID implements Source.
func (s CounterSource) NextID(string) (string, error) {
	return strconv.FormatInt(s.counter.Next(), 10), nil
}

// Stater returns file metadata.
type Stater interface {
	Stat(path string) (models.FileMetadata, error)
}

// CreationDateSource derives identifiers from file timestamps. Creation
// time is not portable, so the modification time stands in for it; the
// copy stage preserves it from the original note. Two notes stamped within
// the same second get the same identifier.
type CreationDateSource struct {
	files Stater
	loc   *time.Location
}

// NewCreationDateSource returns a Source reading timestamps from files,
// formatted in loc (time.Local when nil).
func NewCreationDateSource(files Stater, loc *time.Location) CreationDateSource {
	if loc == nil {
		loc = time.Local
	}
	return CreationDateSource{files: files, loc: loc}
}

// NextID implements Source.
func (s CreationDateSource) NextID(path string) (string, error) {
	meta, err := s.files.Stat(path)
	if err != nil {
		return "", fmt.Errorf("identity: creation date: %w", err)
	}
	return meta.ModTime.In(s.loc).Format(Layout), nil
}
