package commands

import (
	"log/slog"
	"os"

	"github.com/leapstack-labs/leapstore/internal/cli/config"
	"github.com/leapstack-labs/leapstore/internal/cli/output"
	"github.com/leapstack-labs/leapstore/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a fully built engine:
// schema loaded and seeds inserted. Returns the context and a cleanup
// function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc, cleanup, err := NewCommandContextWithoutBuild(cmd)
	if err != nil {
		return nil, nil, err
	}

	if err := cc.Engine.Build(cmd.Context()); err != nil {
		cleanup()
		return nil, nil, err
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutBuild creates a CommandContext whose engine has
// an open history store but no tables loaded yet. Commands that only talk
// to the store, or that drive the build themselves, start here.
func NewCommandContextWithoutBuild(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng, err := createEngine(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {
		_ = eng.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that touch neither the database nor the history store.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		DatabaseName: getEnvOrDefault("LEAPSTORE_DATABASE_NAME", config.DefaultDatabaseName),
		SchemaPath:   getEnvOrDefault("LEAPSTORE_SCHEMA_PATH", config.DefaultSchemaPath),
		SeedsDir:     getEnvOrDefault("LEAPSTORE_SEEDS_DIR", config.DefaultSeedsDir),
		StatePath:    getEnvOrDefault("LEAPSTORE_STATE_PATH", config.DefaultStateFile),
		Verbose:      os.Getenv("LEAPSTORE_VERBOSE") == "true",
		OutputFormat: os.Getenv("LEAPSTORE_OUTPUT"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	return engine.New(engine.Config{
		DatabaseName: cfg.DatabaseName,
		SchemaPath:   cfg.SchemaPath,
		SeedsDir:     cfg.SeedsDir,
		StatePath:    cfg.StatePath,
		Logger:       logger,
	})
}
