package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/qstripper/internal/configloader"
	"github.com/yaklabco/qstripper/internal/logging"
	"github.com/yaklabco/qstripper/pkg/config"
)

// loadedConfig is the resolved configuration for one command invocation.
type loadedConfig struct {
	cfg        *config.Config
	workingDir string
	color      string
}

// loadConfig layers config files, environment and cliCfg, logging any warnings.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*loadedConfig, error) {
	logger := logging.Default()

	configPath, _ := cmd.Flags().GetString("config")
	color, _ := cmd.Flags().GetString("color")

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, configError(err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, result.LoadedFrom)
	}

	return &loadedConfig{cfg: result.Config, workingDir: workDir, color: color}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
