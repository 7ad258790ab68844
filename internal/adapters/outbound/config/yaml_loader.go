package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abdidvp/reviewkit/internal/domain"
)

// DefaultFileName is the configuration document looked up in a project root.
const DefaultFileName = ".reviewkit.yaml"

// styleKeys mark a top-level mapping as a per-language style block.
var styleKeys = []string{"indent_size", "max_line_length", "style_guide", "semicolons"}

// YAMLLoader implements domain.ConfigLoader by reading a YAML (or JSON)
// document and merging it over domain.DefaultConfig.
type YAMLLoader struct {
	logger *slog.Logger
}

// New creates a YAMLLoader. A nil logger discards output.
func New(logger *slog.Logger) *YAMLLoader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &YAMLLoader{logger: logger}
}

// document mirrors the configuration keys with pointers so absent keys can
// be told apart from zero values.
type document struct {
	EnabledChecks     *[]string      `yaml:"enabled_checks"`
	SeverityThreshold *string        `yaml:"severity_threshold"`
	MaxFileLines      *int           `yaml:"max_file_lines"`
	MaxMethodLines    *int           `yaml:"max_method_lines"`
	MaxComplexity     *int           `yaml:"max_complexity"`
	IgnorePaths       *[]string      `yaml:"ignore_paths"`
	FileExtensions    *[]string      `yaml:"file_extensions"`
	Rest              map[string]any `yaml:",inline"`
}

type languageOverrides struct {
	IndentSize    *int    `yaml:"indent_size"`
	MaxLineLength *int    `yaml:"max_line_length"`
	StyleGuide    *string `yaml:"style_guide"`
	Semicolons    *bool   `yaml:"semicolons"`
}

// Load reads the document at path. An empty path yields the defaults; a
// missing file yields the defaults and a warning. A malformed or invalid
// document returns an error wrapping domain.ErrConfigParse.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	if path == "" {
		return domain.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("config file not found, using defaults", "path", path)
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, fmt.Errorf("%w: reading %s: %w", domain.ErrConfigParse, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("config loaded", "path", path, "extra_keys", len(cfg.Extra))
	return cfg, nil
}

// Parse merges a configuration document over the defaults.
func Parse(data []byte) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %w", domain.ErrConfigParse, err)
	}

	cfg, err := merge(cfg, doc)
	if err != nil {
		return domain.Config{}, fmt.Errorf("%w: %w", domain.ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %w", domain.ErrConfigParse, err)
	}
	return cfg, nil
}

// merge overlays the present keys of doc on base. Language blocks merge per
// field; unrecognized keys land in Config.Extra.
func merge(base domain.Config, doc document) (domain.Config, error) {
	cfg := base

	if doc.EnabledChecks != nil {
		checks := make([]domain.Category, 0, len(*doc.EnabledChecks))
		for _, name := range *doc.EnabledChecks {
			cat, err := domain.ParseCategory(name)
			if err != nil {
				return cfg, fmt.Errorf("enabled_checks: %w", err)
			}
			checks = append(checks, cat)
		}
		cfg = cfg.WithChecks(checks)
	}
	if doc.SeverityThreshold != nil {
		sev, err := domain.ParseSeverity(*doc.SeverityThreshold)
		if err != nil {
			return cfg, fmt.Errorf("severity_threshold: %w", err)
		}
		cfg.SeverityThreshold = sev
	}
	if doc.MaxFileLines != nil {
		cfg.MaxFileLines = *doc.MaxFileLines
	}
	if doc.MaxMethodLines != nil {
		cfg.MaxMethodLines = *doc.MaxMethodLines
	}
	if doc.MaxComplexity != nil {
		cfg.MaxComplexity = *doc.MaxComplexity
	}
	if doc.IgnorePaths != nil {
		cfg.IgnorePaths = append([]string(nil), *doc.IgnorePaths...)
	}
	if doc.FileExtensions != nil {
		exts := make([]string, 0, len(*doc.FileExtensions))
		for _, e := range *doc.FileExtensions {
			exts = append(exts, strings.ToLower(e))
		}
		cfg.FileExtensions = exts
	}

	languages := make(map[string]domain.LanguageStyle, len(cfg.Languages))
	for k, v := range cfg.Languages {
		languages[k] = v
	}
	extra := make(map[string]any)
	for key, value := range doc.Rest {
		block, ok := value.(map[string]any)
		if !ok || !isStyleBlock(block) {
			extra[key] = value
			continue
		}
		var over languageOverrides
		if err := remarshal(block, &over); err != nil {
			return cfg, fmt.Errorf("%s: %w", key, err)
		}
		languages[key] = applyLanguage(cfg.Style(key), over)
	}
	cfg.Languages = languages
	if len(extra) > 0 {
		cfg.Extra = extra
	}
	return cfg, nil
}

func isStyleBlock(block map[string]any) bool {
	for _, k := range styleKeys {
		if _, ok := block[k]; ok {
			return true
		}
	}
	return false
}

func remarshal(in any, out any) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

func applyLanguage(base domain.LanguageStyle, over languageOverrides) domain.LanguageStyle {
	if over.IndentSize != nil {
		base.IndentSize = *over.IndentSize
	}
	if over.MaxLineLength != nil {
		base.MaxLineLength = *over.MaxLineLength
	}
	if over.StyleGuide != nil {
		base.StyleGuide = *over.StyleGuide
	}
	if over.Semicolons != nil {
		base.Semicolons = *over.Semicolons
	}
	return base
}
