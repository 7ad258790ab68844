package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/reviewkit/internal/adapters/outbound/config"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/filestore"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/report"
	"github.com/abdidvp/reviewkit/internal/adapters/outbound/scanner"
	"github.com/abdidvp/reviewkit/internal/application"
	"github.com/abdidvp/reviewkit/internal/domain"
)

type handlers struct {
	root   string
	logger *slog.Logger
}

// registerTools registers the review tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcplib.NewTool("review_file",
			mcplib.WithDescription("Review one source file for security, performance, quality and best-practice issues. Returns the JSON report."),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the file relative to the project root"),
			),
			mcplib.WithString("checks", mcplib.Description("Comma-separated checks to run, or \"all\" (default)")),
		),
		h.reviewFile,
	)

	s.AddTool(
		mcplib.NewTool("review_project",
			mcplib.WithDescription("Review every analyzable file under a directory. Returns the JSON report."),
			mcplib.WithString("path", mcplib.Description("Directory relative to the project root (default: the root)")),
			mcplib.WithString("checks", mcplib.Description("Comma-separated checks to run, or \"all\" (default)")),
		),
		h.reviewProject,
	)

	s.AddTool(
		mcplib.NewTool("style_check",
			mcplib.WithDescription("Check code style of a file or directory, optionally fixing it. Returns the JSON report."),
			mcplib.WithString("path", mcplib.Description("File or directory relative to the project root (default: the root)")),
			mcplib.WithBoolean("fix", mcplib.Description("Apply automatic fixes and rewrite changed files")),
			mcplib.WithString("style", mcplib.Description("Style preset: pep8, black, airbnb or standard")),
		),
		h.styleCheck,
	)
}

func (h *handlers) reviewFile(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	path, err := h.resolve(file)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return h.review(ctx, application.Target{File: path}, request.GetString("checks", ""))
}

func (h *handlers) reviewProject(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	dir, err := h.resolve(request.GetString("path", "."))
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return h.review(ctx, application.Target{Project: dir}, request.GetString("checks", ""))
}

func (h *handlers) review(ctx context.Context, target application.Target, checks string) (*mcplib.CallToolResult, error) {
	cfg, err := h.config()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if checks != "" {
		cats, err := domain.ParseChecks(strings.Split(checks, ","))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		cfg = cfg.WithChecks(cats)
	}

	svc := application.NewReviewService(scanner.New(h.logger), filestore.New(), nil, application.WithLogger(h.logger))
	r, err := svc.Review(ctx, target, cfg)
	if err != nil {
		return errorResult(fmt.Sprintf("review failed: %v", err)), nil
	}
	return jsonReport(r)
}

func (h *handlers) styleCheck(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	path, err := h.resolve(request.GetString("path", "."))
	if err != nil {
		return errorResult(err.Error()), nil
	}
	cfg, err := h.config()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if preset := request.GetString("style", ""); preset != "" {
		if cfg, err = cfg.WithPreset(preset); err != nil {
			return errorResult(err.Error()), nil
		}
	}

	target := application.Target{Project: path}
	if !isDir(path) {
		target = application.Target{File: path}
	}

	svc := application.NewStyleService(scanner.New(h.logger), filestore.New(), nil, application.WithLogger(h.logger))
	r, err := svc.Check(ctx, target, cfg, request.GetBool("fix", false))
	if err != nil {
		return errorResult(fmt.Sprintf("style check failed: %v", err)), nil
	}
	return jsonReport(r)
}

// resolve maps a tool argument to a path inside the project root.
func (h *handlers) resolve(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("path %q must be relative to the project root", rel)
	}
	if rel != "." && !filepath.IsLocal(rel) {
		return "", fmt.Errorf("path %q escapes the project root", rel)
	}
	return filepath.Join(h.root, rel), nil
}

func (h *handlers) config() (domain.Config, error) {
	return config.New(h.logger).Load(filepath.Join(h.root, config.DefaultFileName))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// jsonReport renders r with the JSON report renderer as a text content result.
func jsonReport(r *domain.Report) (*mcplib.CallToolResult, error) {
	var buf bytes.Buffer
	if err := (report.JSONRenderer{}).Render(&buf, r); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(buf.String())},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
