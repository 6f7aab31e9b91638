// Package project gathers the source files of a directory tree into the
// path → content mapping used for whole-project analysis.
package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/kmitofficial/CodeGenie-G372-PS25/config"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/gitignore"
)

// maxDepth bounds how deep the walk descends; deeper trees are almost always generated.
const maxDepth = 8

// Collector walks a project and returns its interesting files.
type Collector struct {
	config *config.Config
	logger *zap.Logger
}

// NewCollector creates a new file collector
func NewCollector(cfg *config.Config, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{config: cfg, logger: logger}
}

// Collect returns root's files keyed by slash-separated relative path, in
// lexical walk order. Ignored, oversized, unsupported and secret files are
// skipped; unreadable entries are skipped silently.
func (c *Collector) Collect(ctx context.Context, root string) (*orderedmap.OrderedMap[string, string], error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", root)
	}

	matcher, err := gitignore.New(gitignore.Defaults...)
	if err != nil {
		return nil, err
	}
	if err := matcher.LoadFile(filepath.Join(root, ".gitignore")); err != nil {
		return nil, fmt.Errorf("failed to load .gitignore: %w", err)
	}

	files := orderedmap.New[string, string]()
	maxSize := c.config.MaxFileSize()
	skipped := 0

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			skipped++
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if matcher.Match(rel, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if isUnimportantDirectory(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if isUnimportantFile(rel) || !c.config.IsFileSupported(rel) || c.config.IsSecretFile(rel) {
			return nil
		}

		fi, err := d.Info()
		if err != nil || fi.Size() > maxSize {
			skipped++
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			skipped++
			return nil
		}

		content := string(data)
		if c.config.Security.RedactSecrets {
			content = Redact(rel, content)
		}
		files.Set(rel, content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	c.logger.Info("Collected project files",
		zap.String("root", root),
		zap.Int("files", files.Len()),
		zap.Int("skipped", skipped))

	return files, nil
}

// unimportantDirs hold no architectural signal. Entries with a slash match a
// path suffix, the rest match a single directory name.
var unimportantDirs = map[string]bool{
	"out": true, "bin": true, "obj": true, "coverage": true,
	".next": true, ".nuxt": true, ".pytest_cache": true, ".mypy_cache": true, ".tox": true,
	".eclipse": true, ".settings": true, ".gitlab-ci": true,
	"logs": true, "tmp": true, "temp": true, ".tmp": true,
	"test-results": true, "coverage-reports": true, "jest-coverage": true, ".nyc_output": true,
	".pnpm-store": true, ".npm": true, ".yarn": true,
	"cmake-build-debug": true, "cmake-build-release": true,
	".github/workflows": true, "docs/api": true, "docs/generated": true,
}

func isUnimportantDirectory(rel string) bool {
	if strings.Count(rel, "/") >= maxDepth {
		return true
	}
	lower := strings.ToLower(rel)
	if unimportantDirs[filepath.Base(lower)] {
		return true
	}
	for dir := range unimportantDirs {
		if strings.Contains(dir, "/") && (lower == dir || strings.HasSuffix(lower, "/"+dir)) {
			return true
		}
	}
	return false
}

var (
	unimportantNames = map[string]bool{
		"package-lock.json": true, "yarn.lock": true, "pnpm-lock.yaml": true, "composer.lock": true,
		"pipfile.lock": true, "poetry.lock": true, "cargo.lock": true, "go.sum": true,
		"bundle.js": true, "bundle.css": true, "desktop.ini": true,
		".env.example": true, ".env.template": true, ".env.sample": true,
	}
	unimportantSuffixes = []string{
		".min.js", ".min.css", ".map", ".pb.go", ".gen.go", "_generated.go",
		".test.json", ".spec.json", ".snap",
	}
)

func isUnimportantFile(rel string) bool {
	lower := strings.ToLower(rel)
	name := filepath.Base(lower)
	if unimportantNames[name] {
		return true
	}
	for _, suffix := range unimportantSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	if strings.HasSuffix(name, ".sql") && strings.Contains(lower, "seed") {
		return true
	}
	if strings.HasSuffix(name, ".json") && strings.Contains(lower, "fixture") {
		return true
	}
	return false
}
