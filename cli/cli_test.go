package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmitofficial/CodeGenie-G372-PS25/config"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/codegen"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/inference"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/project"
)

type fakeGenerator struct {
	mu           sync.Mutex
	continuation string
	prompts      []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ inference.SamplingConfig) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return prompt + f.continuation, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, gen *fakeGenerator, args ...string) (string, error) {
	t.Helper()
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", "logging:\n  level: error\n")

	root := newRootCommand(func(*config.Config) (inference.Generator, error) { return gen, nil })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--config", cfgPath))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	file := writeFile(t, t.TempDir(), "bad.py", "def f(:\n  pass")
	gen := &fakeGenerator{continuation: "nothing useful"}

	out, err := run(t, gen, "analyze", file)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	issues := got["issues"].([]any)
	require.NotEmpty(t, issues)
	assert.Equal(t, "high", issues[0].(map[string]any)["severity"])
	assert.Contains(t, gen.prompts[0], "CODE TO ANALYZE (python):")
}

func TestGenerateCommand(t *testing.T) {
	file := writeFile(t, t.TempDir(), "main.go", "package main\n\nfunc main() {\n}\n")
	gen := &fakeGenerator{continuation: "```go\nfmt.Println(\"hi\")\n```"}

	out, err := run(t, gen, "generate", file, "-i", "print hi", "--line", "4")
	require.NoError(t, err)

	var got codegen.CodeResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, `fmt.Println("hi")`, got.RefinedCode)
	assert.Contains(t, gen.prompts[0], "The cursor is at line 4.")
	assert.Contains(t, gen.prompts[0], "language: go")

	_, err = run(t, gen, "generate", file)
	assert.ErrorContains(t, err, "instruction")
}

func TestAnalyzeProjectCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "print(1)")
	writeFile(t, dir, "node_modules/x.js", "ignored")
	gen := &fakeGenerator{continuation: `{"project_summary": {"title": "Tiny"}, "summary": "ok"}`}

	out, err := run(t, gen, "analyze-project", dir)
	require.NoError(t, err)

	assert.Contains(t, gen.prompts[0], "=== app.py ===\nprint(1)")
	assert.NotContains(t, gen.prompts[0], "node_modules")
	assert.Contains(t, out, `"title": "Tiny"`)
}

func TestInitReportsGeneratorError(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.yaml", "logging:\n  level: error\n")
	root := newRootCommand(func(*config.Config) (inference.Generator, error) {
		return nil, errors.New("no model server")
	})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"analyze", "x.py", "--config", cfgPath})

	err := root.Execute()
	assert.ErrorContains(t, err, "no model server")
}

func TestREPL(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "bad.py", "x = (1,\n")
	gen := &fakeGenerator{continuation: `{"issues": [], "summary": "Looks fine."}`}

	cfg := config.Default()
	registry := NewCommandRegistry(codegen.NewService(gen, cfg, nil), project.NewCollector(cfg, nil))

	input := strings.Join([]string{
		"/help",
		"",
		"/analyze",
		"/analyze " + file,
		"/optimize " + filepath.Join(dir, "missing.py"),
		"what now",
		"/end",
		"/help",
	}, "\n")
	var out bytes.Buffer
	require.NoError(t, NewREPL(strings.NewReader(input), &out, registry).Start(context.Background()))

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, "Commands:"))
	assert.Contains(t, text, "/project <dir>")
	assert.Contains(t, text, "usage: /analyze <file> [language]")
	assert.Contains(t, text, "ANALYSIS RESULTS")
	assert.Contains(t, text, "[high] syntax")
	assert.Contains(t, text, "Found 1 structural issues. Looks fine.")
	assert.Contains(t, text, "failed to read")
	assert.Contains(t, text, "unsupported function")
	assert.Contains(t, text, "Goodbye!")
	assert.Len(t, gen.prompts, 1)
}

func TestLanguageFor(t *testing.T) {
	assert.Equal(t, "python", languageFor("a/b.py", ""))
	assert.Equal(t, "typescript", languageFor("App.TSX", ""))
	assert.Equal(t, "ruby", languageFor("a.py", "ruby"))
	assert.Equal(t, "", languageFor("Makefile", ""))
}
