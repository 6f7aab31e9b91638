package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/user"
	"path/filepath"
	"strings"
)

type REPL struct {
	scanner  *bufio.Scanner
	out      io.Writer
	registry *CommandRegistry
	running  bool
}

func NewREPL(in io.Reader, out io.Writer, registry *CommandRegistry) *REPL {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &REPL{
		scanner:  scanner,
		out:      out,
		registry: registry,
		running:  true,
	}
}

// Start reads commands until /end, end of input or ctx is cancelled.
func (r *REPL) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "🚀 CodeGenie CLI Started")
	fmt.Fprintln(r.out, "Type '/help' for commands, '/end' to exit")
	fmt.Fprint(r.out, "> ")

	for r.running && r.scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		input := strings.TrimSpace(r.scanner.Text())
		r.processCommand(ctx, input)

		if r.running {
			fmt.Fprint(r.out, "> ")
		}
	}

	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

func (r *REPL) processCommand(ctx context.Context, input string) {
	if input == "" {
		return
	}
	output, end := r.registry.Execute(ctx, input)
	if output != "" {
		fmt.Fprintln(r.out, output)
	}
	if end {
		r.running = false
	}
}

// expandPath resolves a leading ~ to the current user's home directory.
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	return filepath.Join(usr.HomeDir, path[2:])
}
