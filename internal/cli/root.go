// Package cli: команды navedit на cobra.
package cli

import (
	"context"
	"fmt"

	"github.com/annel0/navmesh-editor/internal/config"
	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/annel0/navmesh-editor/internal/storage"
	"github.com/spf13/cobra"
)

// NewRootCmd собирает дерево команд navedit
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "navedit",
		Short: "Headless navmesh editor",
		Long:  "navedit: headless navmesh editor with area filters and build presets.",
		// SilenceUsage prevents printing usage on every error
		SilenceUsage:      true,
		PersistentPreRunE: applyLogLevel,
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to YAML config (default: $NAVEDIT_CONFIG)")
	root.PersistentFlags().String("log-level", "", "Console log level: trace|debug|info|warn|error")

	root.Version = version
	root.SetVersionTemplate(fmt.Sprintf("navedit version %s\n", version))

	root.AddCommand(NewRunCmd())
	root.AddCommand(NewSettingsCmd())
	root.AddCommand(NewAreasCmd())
	root.AddCommand(NewFilterCmd())
	return root
}

// loadConfig читает конфигурацию по флагу --config или NAVEDIT_CONFIG
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, exitError(exitConfig, "loading config: %v", err)
	}
	return cfg, nil
}

func applyLogLevel(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("log-level")
	if name == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		name = cfg.Editor.LogLevel
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return exitError(exitUsage, "%v", err)
	}
	logging.SetDefaultLevel(level)
	return nil
}

// openStore открывает хранилище пресетов, при пустом пути в памяти
func openStore(cfg *config.Config) (storage.PresetRepo, error) {
	if cfg.Storage.Path == "" {
		return storage.NewMemoryPresetRepo(), nil
	}
	repo, err := storage.NewBadgerPresetRepo(cfg.Storage.Path, storage.WithCompression(cfg.Storage.Compression))
	if err != nil {
		return nil, exitError(exitStorage, "opening preset store: %v", err)
	}
	return repo, nil
}

func closeStore(repo storage.PresetRepo) {
	if err := repo.Close(); err != nil {
		logging.Warn("closing preset store: %v", err)
	}
}

// cmdContext возвращает контекст команды; без ExecuteContext он пуст
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
