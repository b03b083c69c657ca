// Package storage defines the vault file-system abstraction.
package storage

import (
	"time"

	"github.com/starford/cosmify/internal/models"
)

// Provider is the interface for vault file operations. Paths are relative
// to the vault root.
type Provider interface {
	// Root returns the absolute vault directory.
	Root() string
	// List returns metadata for every note and image under dir. Folders
	// whose name starts with "_" or "." are skipped.
	List(dir string) ([]models.FileMetadata, error)
	// Stat returns metadata for a single file.
	Stat(path string) (models.FileMetadata, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Move renames oldPath to newPath.
	Move(oldPath, newPath string) error
	// SetTimes sets the access and modification times of path.
	SetTimes(path string, atime, mtime time.Time) error
}
