package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmitofficial/CodeGenie-G372-PS25/config"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/codegen"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/inference"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/logging"
	"github.com/kmitofficial/CodeGenie-G372-PS25/internal/project"
	"github.com/kmitofficial/CodeGenie-G372-PS25/routes"
)

const shutdownTimeout = 10 * time.Second

type generatorFactory func(*config.Config) (inference.Generator, error)

// app holds everything a command needs once configuration is loaded.
type app struct {
	newGenerator generatorFactory

	configPath string
	verbose    bool

	cfg       *config.Config
	logger    *zap.Logger
	gen       inference.Generator
	service   *codegen.Service
	collector *project.Collector
}

// Execute runs the command line until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the codegenie command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(inference.New)
}

func newRootCommand(newGenerator generatorFactory) *cobra.Command {
	a := &app{newGenerator: newGenerator}

	root := &cobra.Command{
		Use:   "codegenie",
		Short: "CodeGenie - LLM code generation and analysis backend",
		Long: `CodeGenie turns developer requests and source context into generated code,
converted code, bug and optimization reports, or whole-project documentation.

Run without arguments to start the HTTP server.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config.yaml (default: ./config.yaml or ../config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.serveCommand(),
		a.generateCommand(),
		a.convertCommand(),
		a.analyzeCommand(),
		a.optimizeCommand(),
		a.analyzeProjectCommand(),
		a.replCommand(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command, args []string) error {
	path := a.configPath
	if path == "" {
		path = config.Locate()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	gen, err := a.newGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create inference client: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.gen = gen
	a.service = codegen.NewService(gen, cfg, logger)
	a.collector = project.NewCollector(cfg, logger)

	logger.Debug("Configuration loaded",
		zap.String("config", path),
		zap.String("provider", cfg.Inference.Provider),
		zap.String("model", cfg.Inference.Model))
	return nil
}

func (a *app) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down gracefully.
func (a *app) serve(ctx context.Context) error {
	e := routes.NewServer(a.cfg, a.logger, a.gen)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server",
			zap.String("address", a.cfg.Server.Address),
			zap.String("provider", a.cfg.Inference.Provider),
			zap.String("model", a.cfg.Inference.Model))
		if err := e.Start(a.cfg.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
