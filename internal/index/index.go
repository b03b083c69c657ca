package index

// DocumentIndex defines the interface for conversion index operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with fakes.
type DocumentIndex interface {
	ReplaceAll(rows []DocumentRow) (int, error)
	LookupTitle(title string) (string, bool, error)
	AllChecksums() (map[string]string, error)
	Count() (int, error)
	Close() error
}

// Verify *DB satisfies DocumentIndex at compile time.
var _ DocumentIndex = (*DB)(nil)
