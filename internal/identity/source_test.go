package identity

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/cosmify/internal/models"
)

func TestCounter_SeededFromStart(t *testing.T) {
	c := NewCounter(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))
	assert.Equal(t, int64(20240506070810), c.Next())
	assert.Equal(t, int64(20240506070811), c.Next())
}

func TestCounter_ConcurrentValuesAreUnique(t *testing.T) {
	c := NewCounter(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	const n = 200
	seen := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- c.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[int64]struct{}{}
	for v := range seen {
		unique[v] = struct{}{}
	}
	assert.Len(t, unique, n)
}

type fixedStater struct{ mtime time.Time }

func (f fixedStater) Stat(path string) (models.FileMetadata, error) {
	return models.FileMetadata{Path: path, ModTime: f.mtime}, nil
}

func TestCreationDateSource(t *testing.T) {
	src := NewCreationDateSource(fixedStater{mtime: time.Date(2023, 12, 31, 23, 59, 58, 0, time.UTC)}, time.UTC)
	id, err := src.NextID("a.md")
	require.NoError(t, err)
	assert.Equal(t, "20231231235958", id)

	// Same timestamp, same identifier.
	id2, _ := src.NextID("b.md")
	assert.Equal(t, id, id2)
}

func TestTitleMap_WriteCSV(t *testing.T) {
	m := NewTitleMap()
	m.Add("Alpha", "1")
	m.Add("Comma, Title", "2")

	var buf bytes.Buffer
	require.NoError(t, m.WriteCSV(&buf))
	assert.Equal(t, "Alpha,1\n\"Comma, Title\",2\n", buf.String())
}
