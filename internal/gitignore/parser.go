package gitignore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	gitpattern "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Defaults are always ignored when collecting project files: version control,
// editor state, dependency trees, build output and binary assets.
var Defaults = []string{
	".git/", ".svn/", ".hg/", ".bzr/",
	".vscode/", ".idea/", "*.swp", "*.swo", "*~", ".DS_Store", "Thumbs.db",
	"node_modules/", "vendor/", "build/", "dist/", "target/", "__pycache__/", ".venv/", "venv/",
	"*.o", "*.so", "*.dylib", "*.dll", "*.exe", "*.pyc", "*.class",
	"*.log", "*.tmp", "*.temp", ".cache/",
	"*.jpg", "*.jpeg", "*.png", "*.gif", "*.svg", "*.ico", "*.pdf",
	"*.zip", "*.tar", "*.gz", "*.rar", "*.7z",
	"*.db", "*.sqlite", "*.sqlite3",
}

// Matcher decides whether slash-separated paths relative to a project root are
// ignored. Later rules override earlier ones, as in git.
type Matcher struct {
	patterns []gitpattern.Pattern
}

// New creates a Matcher from patterns in .gitignore syntax.
func New(patterns ...string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		if err := m.Add(p); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Load adds every pattern line read from r. Invalid lines are skipped.
func (m *Matcher) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		_ = m.Add(scanner.Text())
	}
	return scanner.Err()
}

// LoadFile adds the patterns of a .gitignore file. A missing file is not an error.
func (m *Matcher) LoadFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	return m.Load(f)
}

// Add parses a single pattern. Blank lines and comments are ignored.
func (m *Matcher) Add(line string) error {
	line = strings.TrimRight(line, " \t\r")
	line = strings.TrimLeft(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	glob := strings.Trim(strings.TrimPrefix(line, "!"), "/")
	if glob == "" {
		return nil
	}
	for _, segment := range strings.Split(glob, "/") {
		if _, err := path.Match(segment, ""); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", line, err)
		}
	}

	m.patterns = append(m.patterns, gitpattern.ParsePattern(line, nil))
	return nil
}

// Match reports whether p is ignored. Files under an ignored directory are
// ignored too.
func (m *Matcher) Match(p string, isDir bool) bool {
	p = strings.Trim(path.Clean(strings.ReplaceAll(p, `\`, "/")), "/")
	if p == "" || p == "." {
		return false
	}

	matcher := gitpattern.NewMatcher(m.patterns)

	// Check parent directories first; git never re-includes below an excluded dir.
	segments := strings.Split(p, "/")
	for i := 1; i < len(segments); i++ {
		if matcher.Match(segments[:i], true) {
			return true
		}
	}
	return matcher.Match(segments, isDir)
}
