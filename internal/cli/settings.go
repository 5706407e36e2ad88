package cli

import (
	"errors"
	"fmt"

	"github.com/annel0/navmesh-editor/internal/config"
	"github.com/annel0/navmesh-editor/internal/settings"
	"github.com/annel0/navmesh-editor/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewSettingsCmd создаёт группу "settings"
func NewSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and persist navmesh build settings",
	}
	cmd.PersistentFlags().String("store", "", "Preset store directory (overrides storage.path)")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print effective build settings as YAML",
		Args:  cobra.NoArgs,
		RunE:  runSettingsShow,
	}
	show.Flags().Bool("defaults", false, "Print built-in defaults instead of the config")

	save := &cobra.Command{
		Use:   "save <preset>",
		Short: "Save build settings and filter masks as a named preset",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsSave,
	}
	save.Flags().StringP("file", "f", "", "Read settings from a YAML file instead of the config")

	load := &cobra.Command{
		Use:   "load <preset>",
		Short: "Load a preset and print it (or export it to a file)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsLoad,
	}
	load.Flags().StringP("out", "o", "", "Write settings to a YAML file")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE:  runSettingsList,
	}

	del := &cobra.Command{
		Use:   "delete <preset>",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsDelete,
	}

	cmd.AddCommand(show, save, load, list, del)
	return cmd
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	bs := settings.Defaults()
	if useDefaults, _ := cmd.Flags().GetBool("defaults"); !useDefaults {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		bs = cfg.Build
	}
	return writeYAML(cmd, bs)
}

func writeYAML(cmd *cobra.Command, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return exitError(exitRuntime, "encoding yaml: %v", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// storeForCmd открывает хранилище с учётом флага --store
func storeForCmd(cmd *cobra.Command) (*config.Config, storage.PresetRepo, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if dir, _ := cmd.Flags().GetString("store"); dir != "" {
		cfg.Storage.Path = dir
	}
	repo, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, repo, nil
}

func runSettingsSave(cmd *cobra.Command, args []string) error {
	cfg, repo, err := storeForCmd(cmd)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	bs := cfg.Build
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		if bs, err = settings.LoadFile(file); err != nil {
			return exitError(exitConfig, "%v", err)
		}
	}

	include, err := cfg.Filter.IncludeMask()
	if err != nil {
		return exitError(exitConfig, "%v", err)
	}
	exclude, err := cfg.Filter.ExcludeMask()
	if err != nil {
		return exitError(exitConfig, "%v", err)
	}

	p := storage.Preset{Name: args[0], Settings: bs, IncludeFlags: include, ExcludeFlags: exclude}
	if err := repo.Save(cmdContext(cmd), p); err != nil {
		return exitError(exitStorage, "saving preset %q: %v", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Preset %q saved.\n", args[0])
	return nil
}

func runSettingsLoad(cmd *cobra.Command, args []string) error {
	_, repo, err := storeForCmd(cmd)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	p, err := repo.Load(cmdContext(cmd), args[0])
	if errors.Is(err, storage.ErrNotFound) {
		return exitError(exitStorage, "preset %q not found", args[0])
	}
	if err != nil {
		return exitError(exitStorage, "loading preset %q: %v", args[0], err)
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := settings.SaveFile(out, p.Settings); err != nil {
			return exitError(exitRuntime, "%v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Preset %q exported to %s.\n", args[0], out)
		return nil
	}
	return writeYAML(cmd, p)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	_, repo, err := storeForCmd(cmd)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	names, err := repo.List(cmdContext(cmd))
	if err != nil {
		return exitError(exitStorage, "listing presets: %v", err)
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runSettingsDelete(cmd *cobra.Command, args []string) error {
	_, repo, err := storeForCmd(cmd)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	if err := repo.Delete(cmdContext(cmd), args[0]); err != nil {
		return exitError(exitStorage, "deleting preset %q: %v", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Preset %q deleted.\n", args[0])
	return nil
}
