package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"katooh/internal/app"
	"katooh/internal/llm"
)

var rootCmd = &cobra.Command{
	Use:   "katooh",
	Short: "AI quiz builder for the Kahoot platform",
	Long:  "KaTooH — terminal app that turns a topic or document into a ready-to-import Kahoot spreadsheet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := fileLogger()
		if err != nil {
			return err
		}
		defer closeLog()

		cfg, found := llm.DiscoverConfig()
		if !found {
			// No key in the environment; the setup screen asks for one.
			cfg = llm.ConfigFromEnv()
		}
		return app.Run(cfg, logger)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}

// fileLogger builds a logger writing JSON lines to the user cache dir,
// keeping the terminal free for the TUI.
func fileLogger() (*zap.Logger, func(), error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return zap.NewNop(), func() {}, nil
	}
	dir = filepath.Join(dir, "katooh")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zap.NewNop(), func() {}, nil
	}

	path := filepath.Join(dir, "katooh.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop(), func() {}, nil
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(f),
		zap.InfoLevel,
	)
	logger := zap.New(core)
	return logger, func() {
		_ = logger.Sync()
		_ = f.Close()
	}, nil
}

// consoleLogger builds a logger for the non-interactive commands,
// writing human-readable lines to stderr.
func consoleLogger(verbose bool) *zap.Logger {
	level := zap.WarnLevel
	if verbose {
		level = zap.InfoLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(os.Stderr),
		level,
	)
	return zap.New(core)
}

// resolveConfig builds the provider configuration for non-interactive
// commands from the environment plus flags.
func resolveConfig(cmd *cobra.Command) (llm.Config, error) {
	cfg := llm.ConfigFromEnv()

	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.Provider = p
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		switch cfg.Provider {
		case "openai":
			cfg.OpenAI.Model = m
		case "anthropic":
			cfg.Anthropic.Model = m
		case "gemini":
			cfg.Gemini.Model = m
		case "openrouter":
			cfg.OpenRouter.Model = m
		}
	}
	if k, _ := cmd.Flags().GetString("api-key"); k != "" {
		cfg.SetAPIKey(k)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("provider configuration: %w", err)
	}
	return cfg, nil
}
