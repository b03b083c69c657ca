// Package models defines the file-level domain types shared by the pipeline.
package models

import (
	"path/filepath"
	"strings"
	"time"
)

// FileKind classifies vault files by extension.
type FileKind string

const (
	KindNote  FileKind = "note"
	KindImage FileKind = "image"
	KindOther FileKind = "other"
)

// KindOf returns the kind of the file at path. Image extensions are
// matched case-insensitively; notes must end in ".md".
func KindOf(path string) FileKind {
	if strings.HasSuffix(path, ".md") {
		return KindNote
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return KindImage
	}
	return KindOther
}

// FileMetadata is a lightweight description of a vault file.
type FileMetadata struct {
	Path    string    `json:"path"` // relative to the vault root, slash separated
	Kind    FileKind  `json:"kind"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Dir returns the folder of the file relative to the vault root, or "" for the root.
func (m FileMetadata) Dir() string {
	d := filepath.ToSlash(filepath.Dir(m.Path))
	if d == "." {
		return ""
	}
	return d
}

// Name returns the base name of the file.
func (m FileMetadata) Name() string { return filepath.Base(m.Path) }
