package filestore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/text/encoding/unicode"

	"github.com/abdidvp/reviewkit/internal/domain"
)

// Store implements domain.FileStore on the local filesystem.
type Store struct{}

// New creates a Store.
func New() *Store { return &Store{} }

// Read loads a file and decodes it as UTF-8, replacing invalid byte
// sequences with U+FFFD.
func (s *Store) Read(path string) (domain.FileRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.FileRecord{}, err
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return domain.FileRecord{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return domain.NewFileRecord(path, string(decoded)), nil
}

// WriteAtomic replaces path with content through a synced temp file in the
// same directory, so readers see either the old or the new file. The file
// mode of an existing file is kept.
func (s *Store) WriteAtomic(path, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmp := f.Name()

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmp, mode); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	syncDir(dir)
	return nil
}

func syncDir(dir string) {
	if runtime.GOOS == "windows" {
		return
	}
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
