package convert

import (
	"sync"
	"time"

	"github.com/starford/cosmify/internal/storage"
)

// keepTimes is an output store that gives every rewritten note back the
// modification time of its original, so later stages (and the graph
// viewer) see the note's real age rather than the conversion time.
type keepTimes struct {
	storage.Provider

	mu    sync.Mutex
	times map[string]time.Time
}

func newKeepTimes(p storage.Provider) *keepTimes {
	return &keepTimes{Provider: p, times: make(map[string]time.Time)}
}

func (k *keepTimes) reset() {
	k.mu.Lock()
	k.times = make(map[string]time.Time)
	k.mu.Unlock()
}

func (k *keepTimes) remember(path string, t time.Time) {
	k.mu.Lock()
	k.times[path] = t
	k.mu.Unlock()
}

func (k *keepTimes) Write(path string, content []byte) error {
	if err := k.Provider.Write(path, content); err != nil {
		return err
	}
	k.mu.Lock()
	t, ok := k.times[path]
	k.mu.Unlock()
	if !ok {
		return nil
	}
	return k.Provider.SetTimes(path, t, t)
}

func (k *keepTimes) Move(oldPath, newPath string) error {
	if err := k.Provider.Move(oldPath, newPath); err != nil {
		return err
	}
	k.mu.Lock()
	if t, ok := k.times[oldPath]; ok {
		delete(k.times, oldPath)
		k.times[newPath] = t
	}
	k.mu.Unlock()
	return nil
}
