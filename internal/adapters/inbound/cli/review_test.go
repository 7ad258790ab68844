package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/reviewkit/internal/adapters/inbound/cli"
	"github.com/abdidvp/reviewkit/internal/domain"
)

const fixtureDir = "../../../../testdata/sample-project"

// run executes the root command and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type jsonReport struct {
	Metadata struct {
		Tool         string `json:"tool"`
		FilesChecked int    `json:"files_checked"`
		FilesFixed   int    `json:"files_fixed"`
		TotalIssues  int    `json:"total_issues"`
	} `json:"metadata"`
	Summary map[string]int `json:"summary"`
	Issues  []struct {
		Rule     string `json:"rule"`
		Category string `json:"category"`
		File     string `json:"file"`
	} `json:"issues"`
}

func parseReport(t *testing.T, out string) jsonReport {
	t.Helper()
	var r jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "reviewkit dev")
}

func TestReviewCommand_CriticalExitsNonZero(t *testing.T) {
	out, _, err := run(t, "review", "--project", fixtureDir, "--format", "json")
	assert.ErrorIs(t, err, cli.ErrIssuesFound)

	r := parseReport(t, out)
	assert.Equal(t, "review", r.Metadata.Tool)
	assert.Equal(t, 3, r.Metadata.FilesChecked)
	assert.Equal(t, 1, r.Summary["critical"])
}

func TestReviewCommand_ChecksWithoutCriticalPasses(t *testing.T) {
	out, _, err := run(t, "review", "--project", fixtureDir, "--format", "json", "--checks", "quality,best_practices")
	require.NoError(t, err)

	r := parseReport(t, out)
	assert.Zero(t, r.Summary["critical"])
	for _, i := range r.Issues {
		assert.Contains(t, []string{"quality", "best_practices"}, i.Category)
	}
}

func TestReviewCommand_DefaultTextReport(t *testing.T) {
	out, _, err := run(t, "review", "--file", filepath.Join(fixtureDir, "web", "main.js"))
	require.NoError(t, err)
	assert.Contains(t, out, "CODE REVIEW REPORT")
	assert.Contains(t, out, "Files checked: 1")
	assert.Contains(t, out, "debug-print")
}

func TestReviewCommand_OutputFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "review.md")
	out, _, err := run(t, "review", "--file", filepath.Join(fixtureDir, "app.py"), "--format", "md", "--output", dest)
	assert.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, "Report saved to: "+dest+"\n", out)

	data, readErr := os.ReadFile(dest)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "# Code Review Report")
	assert.Contains(t, string(data), "## Critical Issues")
}

func TestReviewCommand_ExcludeFlag(t *testing.T) {
	out, _, err := run(t, "review", "--project", fixtureDir, "--format", "json", "--exclude", "web,lib", "--checks", "best_practices")
	require.NoError(t, err)
	r := parseReport(t, out)
	assert.Equal(t, 1, r.Metadata.FilesChecked)
}

func TestReviewCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no target", []string{"review"}, "at least one of the flags"},
		{"two targets", []string{"review", "--file", "a.py", "--project", "."}, "none of the others can be"},
		{"bad format", []string{"review", "--project", fixtureDir, "--format", "pdf"}, "unsupported report format"},
		{"bad check", []string{"review", "--project", fixtureDir, "--checks", "speed"}, "unknown check"},
		{"style check", []string{"review", "--project", fixtureDir, "--checks", "style"}, "not a review check"},
		{"missing file", []string{"review", "--file", filepath.Join(fixtureDir, "nope.py")}, "no analyzable target"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, cli.ErrIssuesFound)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, out, "no report on usage errors")
		})
	}
}

func TestReviewCommand_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_file_lines: -5\n"), 0o644))

	out, _, err := run(t, "review", "--project", fixtureDir, "--config", cfgPath)
	assert.ErrorIs(t, err, domain.ErrConfigParse)
	assert.Empty(t, out)
}

func TestReviewCommand_ConfigThreshold(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("severity_threshold: high\n"), 0o644))

	out, _, err := run(t, "review", "--project", fixtureDir, "--config", cfgPath, "--format", "json")
	assert.ErrorIs(t, err, cli.ErrIssuesFound)
	r := parseReport(t, out)
	assert.Zero(t, r.Summary["low"])
	assert.Zero(t, r.Summary["medium"])
}

func TestReviewCommand_VerboseLogsToStderr(t *testing.T) {
	out, stderr, err := run(t, "review", "--file", filepath.Join(fixtureDir, "lib", "util.go"), "--format", "json", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Zero(t, parseReport(t, out).Metadata.TotalIssues)
}

func TestReviewCommand_GitDiff(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("old.py", "x = 1\n")
	write("notes.txt", "hello\n")
	_, err = wt.Add("old.py")
	require.NoError(t, err)
	_, err = wt.Add("notes.txt")
	require.NoError(t, err)
	_, err = wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)

	write("old.py", "secret = \"s3cr3t\"\n")
	write("notes.txt", "changed\n")

	out, _, err := run(t, "review", "--git-diff", "HEAD", "--repo", dir, "--format", "json")
	assert.ErrorIs(t, err, cli.ErrIssuesFound)

	r := parseReport(t, out)
	assert.Equal(t, 1, r.Metadata.FilesChecked, "notes.txt is filtered by extension")
	require.NotEmpty(t, r.Issues)
	assert.Equal(t, "hardcoded-secret", r.Issues[0].Rule)
}

func TestExecute_UsesContext(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))
}
