package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/reviewkit/internal/domain"
	"github.com/abdidvp/reviewkit/internal/logging"
)

// Target selects the files of a run. Exactly one of File, Project or
// GitDiff is set; Repo is the repository used with GitDiff.
type Target struct {
	File    string
	Project string
	GitDiff string
	Repo    string
}

func (t Target) validate() error {
	n := 0
	for _, v := range []string{t.File, t.Project, t.GitDiff} {
		if v != "" {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%w: exactly one of file, project or git diff must be given", domain.ErrNoTarget)
	}
	return nil
}

// Option configures a service.
type Option func(*options)

type options struct {
	workers int
	clock   func() time.Time
	logger  *slog.Logger
}

// WithWorkers bounds how many files are processed at once. Values below 1
// select GOMAXPROCS.
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

// WithClock replaces time.Now for run and report timestamps.
func WithClock(now func() time.Time) Option { return func(o *options) { o.clock = now } }

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

func buildOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	o.logger = logging.OrDiscard(o.logger)
	return o
}

// resolver turns a Target into the ordered list of files to process.
type resolver struct {
	scanner domain.ProjectScanner
	changes domain.ChangeSource
}

func (r resolver) resolve(ctx context.Context, t Target, cfg domain.Config) ([]string, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	switch {
	case t.File != "":
		info, err := os.Stat(t.File)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrNoTarget, t.File, err)
		}
		if info.IsDir() || !r.scanner.Accept(t.File, cfg) {
			return nil, fmt.Errorf("%w: %s is not an analyzable file", domain.ErrNoTarget, t.File)
		}
		return []string{t.File}, nil

	case t.Project != "":
		paths, err := r.scanner.Scan(ctx, t.Project, cfg)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		return paths, nil

	default:
		if r.changes == nil {
			return nil, fmt.Errorf("%w: diff ranges are not supported here", domain.ErrNoTarget)
		}
		repo := t.Repo
		if repo == "" {
			repo = "."
		}
		changed, err := r.changes.ChangedFiles(repo, t.GitDiff)
		if err != nil {
			return nil, fmt.Errorf("listing changes in %s: %w", t.GitDiff, err)
		}
		paths := make([]string, 0, len(changed.Files))
		for _, p := range changed.Files {
			if r.scanner.AcceptUnder(changed.Root, p, cfg) {
				paths = append(paths, p)
			}
		}
		return paths, nil
	}
}

// processFunc handles one file. ok=false skips the file without failing the run.
type processFunc func(ctx context.Context, path string) (res domain.FileResult, ok bool, err error)

// processAll runs fn over paths with at most workers in flight and records
// the results into run in path order. Cancellation stops scheduling; files
// already finished are still recorded.
func processAll(ctx context.Context, run *domain.Run, paths []string, workers int, fn processFunc) error {
	type slot struct {
		res  domain.FileResult
		done bool
	}
	slots := make([]slot, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for idx, p := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res, ok, err := fn(gctx, p)
			if err != nil {
				return err
			}
			slots[idx] = slot{res: res, done: ok}
			return nil
		})
	}
	err := g.Wait()

	for _, s := range slots {
		if s.done {
			run.Record(s.res)
		}
	}
	if err != nil {
		return err
	}
	if cerr := ctx.Err(); cerr != nil && !errors.Is(cerr, context.Canceled) {
		return cerr
	}
	return nil
}
