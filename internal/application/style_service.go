package application

import (
	"context"

	"github.com/abdidvp/reviewkit/internal/domain"
	"github.com/abdidvp/reviewkit/internal/domain/style"
)

// StyleService orchestrates style checking and, in fix mode, rewriting.
type StyleService struct {
	resolver resolver
	files    domain.FileStore
	opts     options
}

func NewStyleService(
	scanner domain.ProjectScanner,
	files domain.FileStore,
	changes domain.ChangeSource,
	opts ...Option,
) *StyleService {
	return &StyleService{
		resolver: resolver{scanner: scanner, changes: changes},
		files:    files,
		opts:     buildOptions(opts),
	}
}

// Check reports style issues for the target. With fix set, fixable issues
// are repaired, files whose content changed are rewritten atomically and
// the repaired issues are marked fixed.
func (s *StyleService) Check(ctx context.Context, target Target, cfg domain.Config, fix bool) (*domain.Report, error) {
	paths, err := s.resolver.resolve(ctx, target, cfg)
	if err != nil {
		return nil, err
	}
	return s.CheckPaths(ctx, paths, cfg, fix)
}

// CheckPaths is Check over an explicit list of files.
func (s *StyleService) CheckPaths(ctx context.Context, paths []string, cfg domain.Config, fix bool) (*domain.Report, error) {
	run := domain.NewRun(domain.ToolStyle, s.opts.clock())
	checker := style.NewChecker(cfg)
	s.opts.logger.Debug("checking style", "files", len(paths), "fix", fix)

	err := processAll(ctx, run, paths, s.opts.workers, func(_ context.Context, path string) (domain.FileResult, bool, error) {
		file, ok := readFile(s.files, s.opts.logger, path)
		if !ok {
			return domain.FileResult{}, false, nil
		}
		res := domain.FileResult{Path: path, LineCount: len(file.Lines)}
		if !fix {
			res.Issues = checker.Check(file)
			return res, true, nil
		}

		issues, fixed := checker.CheckAndFix(file)
		if !fixed.Changed {
			res.Issues = issues
			return res, true, nil
		}
		if err := s.files.WriteAtomic(path, fixed.Content); err != nil {
			s.opts.logger.Warn("cannot rewrite file, leaving it unchanged", "path", path, "error", err)
			res.Issues = checker.Check(file)
			return res, true, nil
		}
		s.opts.logger.Debug("rewrote file", "path", path, "fixes", len(fixed.Applied))
		res.Issues = issues
		res.Rewritten = true
		return res, true, nil
	})
	if err != nil {
		return nil, err
	}
	return run.Report(s.opts.clock()), nil
}
