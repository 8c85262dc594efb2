package main

import (
	"awesome_web/internal/config"
	"awesome_web/internal/logger"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          "awesome_web",
		Short:        "Blog API on top of a minimal ORM and request dispatcher",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yml", "path to YAML config")

	root.AddCommand(newServeCmd(&configFile), newSchemaCmd(&configFile))
	return root
}

// setup загружает конфиг и поднимает логгер; общая часть всех команд
func setup(configFile string) (*config.Config, *logger.Log, error) {
	cfg, err := config.GetConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.NewLogger(cfg.Logger.Target, cfg.Logger.Level, cfg.Logger.Filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l.Info("init logger")
	return cfg, l, nil
}
