package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/codegen"
)

// languageByExt maps file extensions to editor language ids.
var languageByExt = map[string]string{
	".py":    "python",
	".rb":    "ruby",
	".r":     "r",
	".sh":    "shellscript",
	".bash":  "bash",
	".ps1":   "powershell",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".java":  "java",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cc":    "cpp",
	".cs":    "csharp",
	".go":    "go",
	".rs":    "rust",
	".swift": "swift",
	".kt":    "kotlin",
	".sql":   "sql",
	".php":   "php",
}

// languageFor returns explicit when set, otherwise the language implied by path.
func languageFor(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return languageByExt[strings.ToLower(filepath.Ext(path))]
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) generateCommand() *cobra.Command {
	var (
		instruction string
		line        int
		language    string
	)
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate code at a line of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readSource(args[0])
			if err != nil {
				return err
			}
			result, err := a.service.Generate(cmd.Context(), codegen.CompletionRequest{
				Prompt:      instruction,
				FileContent: content,
				CursorLine:  line - 1,
				LanguageID:  languageFor(args[0], language),
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&instruction, "instruction", "i", "", "what to generate")
	cmd.Flags().IntVarP(&line, "line", "l", 1, "1-based cursor line")
	cmd.Flags().StringVar(&language, "language", "", "language id (default: from file extension)")
	_ = cmd.MarkFlagRequired("instruction")
	return cmd
}

func (a *app) convertCommand() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a file to another language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSource(args[0])
			if err != nil {
				return err
			}
			result, err := a.service.Convert(cmd.Context(), codegen.ConversionRequest{
				Code:           code,
				SourceLanguage: languageFor(args[0], from),
				TargetLanguage: to,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source language (default: from file extension)")
	cmd.Flags().StringVar(&to, "to", "", "target language")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (a *app) analyzeCommand() *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Find bugs in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSource(args[0])
			if err != nil {
				return err
			}
			result, err := a.service.Analyze(cmd.Context(), codegen.AnalysisRequest{
				Code:       code,
				LanguageID: languageFor(args[0], language),
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "language id (default: from file extension)")
	return cmd
}

func (a *app) optimizeCommand() *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "optimize <file>",
		Short: "Suggest optimizations for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSource(args[0])
			if err != nil {
				return err
			}
			result, err := a.service.Optimize(cmd.Context(), codegen.OptimizationRequest{
				Code:       code,
				LanguageID: languageFor(args[0], language),
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "language id (default: from file extension)")
	return cmd
}

func (a *app) analyzeProjectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze-project <dir>",
		Short: "Review and document a whole project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.collector.Collect(cmd.Context(), expandPath(args[0]))
			if err != nil {
				return err
			}
			result, err := a.service.AnalyzeProject(cmd.Context(), codegen.ProjectAnalysisRequest{ProjectFiles: files})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}

func (a *app) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl := NewREPL(cmd.InOrStdin(), cmd.OutOrStdout(), NewCommandRegistry(a.service, a.collector))
			return repl.Start(cmd.Context())
		},
	}
}
