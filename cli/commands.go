package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/codegen"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/project"
)

// CommandHandler defines the interface for command handling
type CommandHandler interface {
	Usage() string
	Handle(ctx context.Context, args []string) string
}

// AnalyzeCommand handles "/analyze <file> [language]"
type AnalyzeCommand struct {
	service *codegen.Service
}

func (c *AnalyzeCommand) Usage() string { return "/analyze <file> [language]  find bugs in a file" }

func (c *AnalyzeCommand) Handle(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "usage: " + c.Usage()
	}
	code, err := readSource(args[0])
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	result, err := c.service.Analyze(ctx, codegen.AnalysisRequest{
		Code:       code,
		LanguageID: languageFor(args[0], optionalArg(args, 1)),
	})
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return formatAnalysis(result)
}

// OptimizeCommand handles "/optimize <file> [language]"
type OptimizeCommand struct {
	service *codegen.Service
}

func (c *OptimizeCommand) Usage() string { return "/optimize <file> [language]  suggest optimizations" }

func (c *OptimizeCommand) Handle(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "usage: " + c.Usage()
	}
	code, err := readSource(args[0])
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	result, err := c.service.Optimize(ctx, codegen.OptimizationRequest{
		Code:       code,
		LanguageID: languageFor(args[0], optionalArg(args, 1)),
	})
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return formatOptimization(result)
}

// ConvertCommand handles "/convert <file> <target>"
type ConvertCommand struct {
	service *codegen.Service
}

func (c *ConvertCommand) Usage() string { return "/convert <file> <target>  convert a file to another language" }

func (c *ConvertCommand) Handle(ctx context.Context, args []string) string {
	if len(args) < 2 {
		return "usage: " + c.Usage()
	}
	code, err := readSource(args[0])
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	result, err := c.service.Convert(ctx, codegen.ConversionRequest{
		Code:           code,
		SourceLanguage: languageFor(args[0], ""),
		TargetLanguage: args[1],
	})
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return result.RefinedCode
}

// ProjectCommand handles "/project <dir>"
type ProjectCommand struct {
	service   *codegen.Service
	collector *project.Collector
}

func (c *ProjectCommand) Usage() string { return "/project <dir>  review and document a project" }

func (c *ProjectCommand) Handle(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return "usage: " + c.Usage()
	}
	files, err := c.collector.Collect(ctx, expandPath(args[0]))
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	result, err := c.service.AnalyzeProject(ctx, codegen.ProjectAnalysisRequest{ProjectFiles: files})
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}
	return formatProject(result)
}

// EndCommand handles the "/end" command
type EndCommand struct{}

func (e *EndCommand) Usage() string { return "/end  leave the session" }

func (e *EndCommand) Handle(ctx context.Context, args []string) string {
	return "Goodbye! 👋"
}

// CommandRegistry manages available commands
type CommandRegistry struct {
	commands map[string]CommandHandler
}

func NewCommandRegistry(service *codegen.Service, collector *project.Collector) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]CommandHandler),
	}

	// Register available commands
	registry.commands["/analyze"] = &AnalyzeCommand{service: service}
	registry.commands["/optimize"] = &OptimizeCommand{service: service}
	registry.commands["/convert"] = &ConvertCommand{service: service}
	registry.commands["/project"] = &ProjectCommand{service: service, collector: collector}
	registry.commands["/end"] = &EndCommand{}

	return registry
}

// Execute runs one input line. The bool reports whether the session should end.
func (cr *CommandRegistry) Execute(ctx context.Context, input string) (string, bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", false
	}

	name := fields[0]
	if name == "/help" {
		return cr.help(), false
	}
	if handler, exists := cr.commands[name]; exists {
		return handler.Handle(ctx, fields[1:]), name == "/end"
	}

	return "unsupported function, type /help for commands", false
}

func (cr *CommandRegistry) help() string {
	names := make([]string, 0, len(cr.commands))
	for name := range cr.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", cr.commands[name].Usage())
	}
	b.WriteString("  /help  show this list")
	return b.String()
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
