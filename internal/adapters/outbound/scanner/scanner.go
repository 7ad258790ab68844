package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/reviewkit/internal/domain"
)

// FileScanner implements domain.ProjectScanner by walking the filesystem.
type FileScanner struct {
	logger *slog.Logger
}

// New creates a FileScanner. A nil logger discards output.
func New(logger *slog.Logger) *FileScanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileScanner{logger: logger}
}

// Scan returns the accepted files under root in lexical walk order.
// Directories below root whose name contains an ignore substring are pruned
// before descending. Entries that vanish or cannot be read are skipped.
func (s *FileScanner) Scan(ctx context.Context, root string, cfg domain.Config) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrNoTarget, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrNoTarget, root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Debug("entry vanished during scan", "path", path)
			} else {
				s.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			}
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && cfg.IsIgnoredDir(d.Name()) {
				s.logger.Debug("pruned directory", "path", path)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if cfg.HasExtension(filepath.Ext(d.Name())) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return files, err
	}

	s.logger.Debug("scan complete", "root", root, "files", len(files))
	return files, nil
}

// AcceptUnder is Accept for a file known to live below root: only the
// directories between root and the file are matched against ignore paths.
// A path outside root falls back to Accept.
func (s *FileScanner) AcceptUnder(root, path string, cfg domain.Config) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return s.Accept(path, cfg)
	}
	return s.Accept(rel, cfg)
}

// Accept applies the directory ignore and extension filters to a single
// file target.
func (s *FileScanner) Accept(path string, cfg domain.Config) bool {
	clean := filepath.Clean(path)
	if !cfg.HasExtension(filepath.Ext(clean)) {
		return false
	}
	dir := filepath.Dir(clean)
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if cfg.IsIgnoredDir(part) {
			return false
		}
	}
	return true
}
