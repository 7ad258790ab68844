package domain

import (
	"context"
	"io"
)

// ProjectScanner enumerates analyzable files and filters single targets.
type ProjectScanner interface {
	Scan(ctx context.Context, root string, cfg Config) ([]string, error)
	Accept(path string, cfg Config) bool
	AcceptUnder(root, path string, cfg Config) bool
}

// ConfigLoader resolves the configuration document into a Config.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// FileStore reads files permissively and rewrites them all-or-nothing.
type FileStore interface {
	Read(path string) (FileRecord, error)
	WriteAtomic(path, content string) error
}

// ChangeSet is the result of listing a version-control range. Files are
// absolute and lie under Root, the top of the working tree.
type ChangeSet struct {
	Root  string
	Files []string
}

// ChangeSource lists files changed in a version-control range.
type ChangeSource interface {
	ChangedFiles(repoPath, rangeSpec string) (ChangeSet, error)
}

// ReportRenderer serializes a report.
type ReportRenderer interface {
	Render(w io.Writer, r *Report) error
}
