package application

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/abdidvp/reviewkit/internal/domain"
	"github.com/abdidvp/reviewkit/internal/domain/review"
)

// ReviewService orchestrates the review pipeline:
// resolve target → read files → run the rule engine → aggregate → report.
type ReviewService struct {
	resolver resolver
	files    domain.FileStore
	opts     options
}

func NewReviewService(
	scanner domain.ProjectScanner,
	files domain.FileStore,
	changes domain.ChangeSource,
	opts ...Option,
) *ReviewService {
	return &ReviewService{
		resolver: resolver{scanner: scanner, changes: changes},
		files:    files,
		opts:     buildOptions(opts),
	}
}

// Review analyzes every file of the target with cfg.
func (s *ReviewService) Review(ctx context.Context, target Target, cfg domain.Config) (*domain.Report, error) {
	paths, err := s.resolver.resolve(ctx, target, cfg)
	if err != nil {
		return nil, err
	}
	return s.ReviewPaths(ctx, paths, cfg)
}

// ReviewPaths analyzes an explicit list of files, in order.
func (s *ReviewService) ReviewPaths(ctx context.Context, paths []string, cfg domain.Config) (*domain.Report, error) {
	run := domain.NewRun(domain.ToolReview, s.opts.clock())
	engine := review.NewEngine(cfg)
	s.opts.logger.Debug("reviewing", "files", len(paths), "workers", s.opts.workers)

	err := processAll(ctx, run, paths, s.opts.workers, func(_ context.Context, path string) (domain.FileResult, bool, error) {
		file, ok := readFile(s.files, s.opts.logger, path)
		if !ok {
			return domain.FileResult{}, false, nil
		}
		return domain.FileResult{
			Path:      path,
			Issues:    engine.Analyze(file),
			LineCount: len(file.Lines),
		}, true, nil
	})
	if err != nil {
		return nil, err
	}
	return run.Report(s.opts.clock()), nil
}

// readFile reads one file; failures are logged and the file is skipped.
func readFile(files domain.FileStore, logger *slog.Logger, path string) (domain.FileRecord, bool) {
	file, err := files.Read(path)
	if err == nil {
		return file, true
	}
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("file vanished, skipping", "path", path)
	} else {
		logger.Warn("cannot read file, skipping", "path", path, "error", err)
	}
	return domain.FileRecord{}, false
}
