package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/reviewkit/internal/adapters/outbound/scanner"
	"github.com/abdidvp/reviewkit/internal/domain"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestFileScanner_ScanFiltersAndOrders(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"app.py",
		"web/main.js",
		"web/README.md",
		"lib/util.go",
		"lib/node_modules/dep/index.js",
		"my_build_output/gen.py",
		".git/hooks/pre-commit.py",
		"pkg/__pycache__/mod.py",
	)

	files, err := scanner.New(nil).Scan(context.Background(), root, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"app.py", "lib/util.go", "web/main.js"}, rel(t, root, files))
}

func TestFileScanner_ExtraExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/a.py", "generated/b.py")

	cfg := domain.DefaultConfig().WithExcludes([]string{"generated/"})
	files, err := scanner.New(nil).Scan(context.Background(), root, cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/a.py"}, rel(t, root, files))
}

func TestFileScanner_MissingRoot(t *testing.T) {
	_, err := scanner.New(nil).Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), domain.DefaultConfig())
	assert.ErrorIs(t, err, domain.ErrNoTarget)
}

func TestFileScanner_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.py", "b.py")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.New(nil).Scan(ctx, root, domain.DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileScanner_Accept(t *testing.T) {
	s := scanner.New(nil)
	cfg := domain.DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"src/app.py", true},
		{"SRC/App.PY", true},
		{"README.md", false},
		{"node_modules/lib/index.js", false},
		{"project/dist/bundle.js", false},
		{"project/distro-tools/x.py", false},
		{"./app.go", true},
		{"../sibling/app.go", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Accept(tt.path, cfg))
		})
	}
}

func TestFileScanner_AcceptUnder(t *testing.T) {
	s := scanner.New(nil)
	cfg := domain.DefaultConfig()
	root := filepath.Join("/builds", "group", "dist-tools")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"ignored names above root", filepath.Join(root, "src", "app.py"), true},
		{"ignored below root", filepath.Join(root, "vendor", "lib.py"), false},
		{"extension still checked", filepath.Join(root, "notes.txt"), false},
		{"outside root", filepath.Join("/builds", "other", "app.py"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.AcceptUnder(root, tt.path, cfg))
		})
	}
}
