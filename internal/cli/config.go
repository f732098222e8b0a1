package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/gitfluff/internal/config"
	"github.com/spf13/cobra"
)

var flagConfigPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gitfluff configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default .gitfluff.toml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfigPath
		if path == "" {
			path = config.FileNames[0]
		}

		if err := config.Init(path); err != nil {
			if errors.Is(err, config.ErrExists) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Config file already exists at %s\n", path)
				return nil
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to discover current directory: %w", err)
		}

		file, path, err := config.NewLoader(log).Load(flagConfigPath, cwd)
		if err != nil {
			return err
		}
		if file == nil {
			// no file yet; create one next to the working directory
			file = &config.File{}
			path = filepath.Join(cwd, config.FileNames[0])
		}

		if err := config.SetField(file, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(path, file); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", args[0], args[1], path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to discover current directory: %w", err)
		}

		settings, err := resolveSettings(flagConfigPath, cwd)
		if err != nil {
			return err
		}
		// compile every pattern so show fails where lint would
		if _, err := settings.Options(nil); err != nil {
			return err
		}

		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Configuration file (default: discovered .gitfluff.toml)")
}
